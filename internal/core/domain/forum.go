package domain

import (
	"errors"
	"time"
)

var ErrPostNotFound = errors.New("post not found")
var ErrCommentNotFound = errors.New("comment not found")

// Post is a forum entry. Author is set once at creation and never reassigned;
// it is the owning relation used to gate edits and deletes.
type Post struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Likes     []string  `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Comment belongs to exactly one post and one authoring account.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Likes     []string  `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LikedBy reports whether username is in the like set.
func LikedBy(likes []string, username string) bool {
	for _, u := range likes {
		if u == username {
			return true
		}
	}
	return false
}
