// Package seed loads the demo feed into the in-memory repositories.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"irysworld/internal/models"
)

//go:embed feed.yaml
var defaultFeed []byte

// Fixture is the decoded form of a seed file.
type Fixture struct {
	Users   []UserSpec  `yaml:"users"`
	Stories []StorySpec `yaml:"stories"`
	Items   []ItemSpec  `yaml:"items"`
}

type UserSpec struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Avatar string `yaml:"avatar"`
}

type StorySpec struct {
	ID    string `yaml:"id"`
	User  string `yaml:"user"`
	Image string `yaml:"image"`
	Age   string `yaml:"age"`
}

// ItemSpec is either a post or a poll, selected by Type.
type ItemSpec struct {
	Type  string `yaml:"type"`
	ID    string `yaml:"id"`
	User  string `yaml:"user"`
	Age   string `yaml:"age"`
	Likes int    `yaml:"likes"`

	Content  string        `yaml:"content"`
	Image    string        `yaml:"image"`
	Comments []CommentSpec `yaml:"comments"`

	Question      string              `yaml:"question"`
	Options       []models.PollOption `yaml:"options"`
	CommentsCount int                 `yaml:"comments_count"`
}

type CommentSpec struct {
	ID      string        `yaml:"id"`
	User    string        `yaml:"user"`
	Age     string        `yaml:"age"`
	Content string        `yaml:"content"`
	Replies []CommentSpec `yaml:"replies"`
}

// Default returns the embedded demo feed.
func Default() (*Fixture, error) {
	return Parse(defaultFeed)
}

// LoadFile reads a fixture from disk.
func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return &fx, nil
}

// parseAge resolves a relative age such as "1h" or "58m20s" against now.
// An empty age means now.
func parseAge(age string, now time.Time) (time.Time, error) {
	if age == "" {
		return now, nil
	}
	d, err := time.ParseDuration(age)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid age %q: %w", age, err)
	}
	if d < 0 {
		return time.Time{}, fmt.Errorf("invalid age %q: must not be negative", age)
	}
	return now.Add(-d), nil
}
