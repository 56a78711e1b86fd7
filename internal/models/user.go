// Package models contains data structures for the Irys World domain.
package models

// User is a profile shown next to posts, polls, stories and comments.
// Profile edits replace the whole value; content refers to users by ID so the
// new name and avatar show up everywhere.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// UserLookup resolves a user ID to the current profile.
type UserLookup func(id string) (User, bool)

// ResolveUser returns the profile for id, or a placeholder when it is unknown.
func ResolveUser(lookup UserLookup, id string) User {
	if lookup != nil {
		if u, ok := lookup(id); ok {
			return u
		}
	}
	return User{ID: id, Name: "Unknown"}
}
