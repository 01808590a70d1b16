package core

import (
	"context"
	"io"
)

// Store owns the five in-memory collections. Mutations are atomic with
// respect to each other and immediately visible to subsequent reads.
type Store interface {
	Users(ctx context.Context) []User
	User(ctx context.Context, id int) (User, error)

	Posts(ctx context.Context) []Post
	Post(ctx context.Context, id int) (Post, error)
	PostsByAuthor(ctx context.Context, authorID int) []Post
	CreatePost(ctx context.Context, title, body string, tags []string, media []Media) Post
	DeletePost(ctx context.Context, id int) error
	AddComment(ctx context.Context, postID int, body string) (Comment, error)

	Reels(ctx context.Context) []Reel
	Reel(ctx context.Context, id int) (Reel, error)

	Stories(ctx context.Context) []StoryGroup
	CreateStory(ctx context.Context, username string, images []string) StoryGroup

	Suggestions(ctx context.Context) []Suggestion
}

// MediaStorage stores one file with the upstream provider and reports the
// durable URL and the inferred media type. Errors wrap ErrUpload.
type MediaStorage interface {
	Upload(ctx context.Context, filename string, file io.Reader) (Media, error)
}
