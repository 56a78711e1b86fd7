package models

import "time"

// Content kinds
const (
	KindPost = "post"
	KindPoll = "poll"
)

// ContentItem is either a *Post or a *Poll. The kind never changes after creation.
type ContentItem interface {
	Kind() string
	ItemID() string
}

// Post is a text and/or image entry in the feed with a threaded discussion.
type Post struct {
	Type          string    `json:"type"`
	ID            string    `json:"id"`
	User          User      `json:"user"`
	Content       string    `json:"content"`
	ImageURL      *string   `json:"image_url"`
	Likes         int       `json:"likes"`
	Liked         bool      `json:"liked"`
	CommentsCount int       `json:"comments_count"`
	Comments      []Comment `json:"comments"`
	CreatedAt     time.Time `json:"created_at"`
	TimeAgo       string    `json:"time_ago"`
}

func (p *Post) Kind() string   { return KindPost }
func (p *Post) ItemID() string { return p.ID }

// PollOption is one fixed choice of a poll. Votes never decrease.
type PollOption struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

// TallyEntry is the share of one option, rounded independently.
type TallyEntry struct {
	OptionID   string `json:"option_id"`
	Votes      int    `json:"votes"`
	Percentage int    `json:"percentage"`
}

// Poll is a question with mutually exclusive options. Polls carry only a
// comment counter, not a thread.
type Poll struct {
	Type          string       `json:"type"`
	ID            string       `json:"id"`
	User          User         `json:"user"`
	Question      string       `json:"question"`
	Options       []PollOption `json:"options"`
	Likes         int          `json:"likes"`
	Liked         bool         `json:"liked"`
	CommentsCount int          `json:"comments_count"`
	VotedOptionID *string      `json:"voted_option_id"`
	TotalVotes    int          `json:"total_votes"`
	Tally         []TallyEntry `json:"tally"`
	CreatedAt     time.Time    `json:"created_at"`
	TimeAgo       string       `json:"time_ago"`
}

func (p *Poll) Kind() string   { return KindPoll }
func (p *Poll) ItemID() string { return p.ID }

// FeedPage is a slice of the feed, newest first.
type FeedPage struct {
	Items  []ContentItem `json:"items"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// PollTally is the live result of a poll as seen by one viewer.
type PollTally struct {
	PollID        string       `json:"poll_id"`
	TotalVotes    int          `json:"total_votes"`
	VotedOptionID *string      `json:"voted_option_id"`
	Tally         []TallyEntry `json:"tally"`
}
