// Package thread holds the comment forest of a post: ordered top-level
// comments, each with an ordered list of replies nested to any depth.
//
// A Forest is not safe for concurrent use. Callers serialise access.
package thread

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"irysworld/internal/models"
)

// Comment is a single node as stored in the forest.
type Comment struct {
	ID        string
	AuthorID  string
	Text      string
	CreatedAt time.Time
}

type node struct {
	Comment
	children []string
}

// Forest stores comments in an arena keyed by ID. Roots and children are kept
// in submission order.
type Forest struct {
	nodes map[string]*node
	roots []string
	newID func() string
	now   func() time.Time
}

// Option configures a Forest.
type Option func(*Forest)

// WithIDFunc overrides comment ID generation.
func WithIDFunc(fn func() string) Option {
	return func(f *Forest) { f.newID = fn }
}

// WithClock overrides the time source used for new comments.
func WithClock(fn func() time.Time) Option {
	return func(f *Forest) { f.now = fn }
}

func NewForest(opts ...Option) *Forest {
	f := &Forest{
		nodes: make(map[string]*node),
		newID: func() string { return "c_" + uuid.NewString() },
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Append adds a top-level comment after all existing ones. Text that is empty
// after trimming leaves the forest unchanged and returns false.
func (f *Forest) Append(authorID, text string) (Comment, bool) {
	if strings.TrimSpace(text) == "" {
		return Comment{}, false
	}
	c := f.make(authorID, text)
	f.nodes[c.ID] = &node{Comment: c}
	f.roots = append(f.roots, c.ID)
	return c, true
}

// Reply adds a comment as the last reply of parentID, wherever it sits in the
// forest. An unknown parent or blank text leaves the forest unchanged.
func (f *Forest) Reply(parentID, authorID, text string) (Comment, bool) {
	if strings.TrimSpace(text) == "" {
		return Comment{}, false
	}
	parent, ok := f.nodes[parentID]
	if !ok {
		return Comment{}, false
	}
	c := f.make(authorID, text)
	f.nodes[c.ID] = &node{Comment: c}
	parent.children = append(parent.children, c.ID)
	return c, true
}

// Load inserts an existing comment, keeping its ID and timestamp. An empty
// parentID makes it a root. Used to restore seeded threads.
func (f *Forest) Load(parentID string, c Comment) error {
	if c.ID == "" {
		return fmt.Errorf("comment id is required")
	}
	if _, dup := f.nodes[c.ID]; dup {
		return fmt.Errorf("comment %s already exists", c.ID)
	}
	if parentID == "" {
		f.nodes[c.ID] = &node{Comment: c}
		f.roots = append(f.roots, c.ID)
		return nil
	}
	parent, ok := f.nodes[parentID]
	if !ok {
		return fmt.Errorf("parent comment %s not found", parentID)
	}
	f.nodes[c.ID] = &node{Comment: c}
	parent.children = append(parent.children, c.ID)
	return nil
}

// Get returns the comment with the given ID.
func (f *Forest) Get(id string) (Comment, bool) {
	n, ok := f.nodes[id]
	if !ok {
		return Comment{}, false
	}
	return n.Comment, true
}

// CountDescendants counts id itself plus every reply below it. Unknown IDs count 0.
func (f *Forest) CountDescendants(id string) int {
	if _, ok := f.nodes[id]; !ok {
		return 0
	}
	count := 0
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		stack = append(stack, f.nodes[cur].children...)
	}
	return count
}

// CountAll is the number of comments in the forest at every depth.
func (f *Forest) CountAll() int {
	total := 0
	for _, id := range f.roots {
		total += f.CountDescendants(id)
	}
	return total
}

// Tree renders the forest with authors resolved through lookup.
func (f *Forest) Tree(lookup models.UserLookup) []models.Comment {
	return f.render(f.roots, lookup, f.now())
}

func (f *Forest) render(ids []string, lookup models.UserLookup, now time.Time) []models.Comment {
	out := make([]models.Comment, 0, len(ids))
	for _, id := range ids {
		n := f.nodes[id]
		out = append(out, models.Comment{
			ID:        n.ID,
			User:      models.ResolveUser(lookup, n.AuthorID),
			Content:   n.Text,
			CreatedAt: n.CreatedAt,
			TimeAgo:   models.TimeAgo(n.CreatedAt, now),
			Replies:   f.render(n.children, lookup, now),
		})
	}
	return out
}

// Clone returns a deep copy sharing the ID generator and clock.
func (f *Forest) Clone() *Forest {
	cp := &Forest{
		nodes: make(map[string]*node, len(f.nodes)),
		roots: append([]string(nil), f.roots...),
		newID: f.newID,
		now:   f.now,
	}
	for id, n := range f.nodes {
		cp.nodes[id] = &node{
			Comment:  n.Comment,
			children: append([]string(nil), n.children...),
		}
	}
	return cp
}

func (f *Forest) make(authorID, text string) Comment {
	return Comment{
		ID:        f.newID(),
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: f.now(),
	}
}
