package models

import "time"

// Story is a full-height image in the reel. Expiry is not enforced.
type Story struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	TimeAgo   string    `json:"time_ago"`
}
