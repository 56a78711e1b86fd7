// Package poll records exactly-once votes on a fixed set of options and
// derives percentage shares from the counts.
//
// A Ballot is not safe for concurrent use. Callers serialise access.
package poll

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"irysworld/internal/models"
)

const (
	MinOptions = 2
	MaxOptions = 5
)

var (
	ErrInvalidQuestion = errors.New("poll question is required")
	ErrOptionCount     = fmt.Errorf("a poll needs between %d and %d options", MinOptions, MaxOptions)
	ErrEmptyOption     = errors.New("poll options cannot be empty")
	ErrDuplicateOption = errors.New("poll option ids must be unique")
	ErrUnknownOption   = errors.New("unknown poll option")
)

// Ballot is the vote state of one poll. A viewer moves from unvoted to voted
// exactly once; the voted state is terminal.
type Ballot struct {
	options []models.PollOption
	index   map[string]int
	votes   map[string]string
}

// ValidateDraft checks a poll draft before it is created.
func ValidateDraft(question string, labels []string) error {
	if strings.TrimSpace(question) == "" {
		return ErrInvalidQuestion
	}
	if len(labels) < MinOptions || len(labels) > MaxOptions {
		return ErrOptionCount
	}
	for _, l := range labels {
		if strings.TrimSpace(l) == "" {
			return ErrEmptyOption
		}
	}
	return nil
}

// New creates a ballot for labels with IDs opt1..optN and zero votes.
func New(question string, labels []string) (*Ballot, error) {
	if err := ValidateDraft(question, labels); err != nil {
		return nil, err
	}
	opts := make([]models.PollOption, len(labels))
	for i, l := range labels {
		opts[i] = models.PollOption{ID: fmt.Sprintf("opt%d", i+1), Text: strings.TrimSpace(l)}
	}
	return FromOptions(opts)
}

// FromOptions restores a ballot with existing counts.
func FromOptions(options []models.PollOption) (*Ballot, error) {
	if len(options) < MinOptions || len(options) > MaxOptions {
		return nil, ErrOptionCount
	}
	b := &Ballot{
		options: append([]models.PollOption(nil), options...),
		index:   make(map[string]int, len(options)),
		votes:   make(map[string]string),
	}
	for i, o := range b.options {
		if _, dup := b.index[o.ID]; dup {
			return nil, ErrDuplicateOption
		}
		if o.Votes < 0 {
			return nil, fmt.Errorf("option %s has negative votes", o.ID)
		}
		b.index[o.ID] = i
	}
	return b, nil
}

// CastVote records viewerID's choice. A viewer who already voted is ignored
// and false is returned. An unknown option is rejected without locking the
// viewer out.
func (b *Ballot) CastVote(viewerID, optionID string) (bool, error) {
	if _, done := b.votes[viewerID]; done {
		return false, nil
	}
	i, ok := b.index[optionID]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownOption, optionID)
	}
	b.options[i].Votes++
	b.votes[viewerID] = optionID
	return true, nil
}

// VotedOption returns the option viewerID picked, if any.
func (b *Ballot) VotedOption(viewerID string) (string, bool) {
	id, ok := b.votes[viewerID]
	return id, ok
}

// Options returns a copy of the options with their current counts.
func (b *Ballot) Options() []models.PollOption {
	return append([]models.PollOption(nil), b.options...)
}

func (b *Ballot) TotalVotes() int {
	return total(b.options)
}

func (b *Ballot) Tally() []models.TallyEntry {
	return ComputeTally(b.options)
}

// ComputeTally gives each option round(100*votes/total). Shares are rounded
// independently and may not add up to 100. With no votes every share is 0.
func ComputeTally(options []models.PollOption) []models.TallyEntry {
	sum := total(options)
	out := make([]models.TallyEntry, len(options))
	for i, o := range options {
		out[i] = models.TallyEntry{OptionID: o.ID, Votes: o.Votes}
		if sum > 0 {
			out[i].Percentage = int(math.Round(100 * float64(o.Votes) / float64(sum)))
		}
	}
	return out
}

func total(options []models.PollOption) int {
	sum := 0
	for _, o := range options {
		sum += o.Votes
	}
	return sum
}
