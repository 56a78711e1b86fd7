package models

import "time"

// Comment is the rendered form of a thread node. Replies are ordered oldest first.
type Comment struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	TimeAgo   string    `json:"time_ago"`
	Replies   []Comment `json:"replies"`
}

// CommentThread is the response for comment mutations on a post.
type CommentThread struct {
	PostID   string    `json:"post_id"`
	Count    int       `json:"count"`
	Comments []Comment `json:"comments"`
	// Created is nil when the mutation was a no-op.
	Created *Comment `json:"created"`
}
