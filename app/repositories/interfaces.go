package repositories

import (
	"context"

	"postboard/app/models"
)

// PostStore is the document store holding post documents and their embedded
// comments. Every method is a single atomic operation on at most one
// document. A missing post is reported as ErrNotFound; any other error is a
// store failure whose message is meant to reach the client unchanged.
type PostStore interface {
	// Find returns every post in the store's natural order.
	Find(ctx context.Context) ([]*models.Post, error)
	// FindByID returns the post with the given id.
	FindByID(ctx context.Context, id string) (*models.Post, error)
	// FindComments returns only the comments of the post with the given id.
	FindComments(ctx context.Context, id string) ([]models.Comment, error)
	// Insert stores a new post, assigning its id and defaults.
	Insert(ctx context.Context, post *models.Post) error
	// Replace overwrites the fields set in update and returns the post after the write.
	Replace(ctx context.Context, id string, update models.PostUpdate) (*models.Post, error)
	// Delete removes the post and returns it as it was before removal.
	Delete(ctx context.Context, id string) (*models.Post, error)
	// PushComment appends comment to the post's comments and returns the post after the write.
	PushComment(ctx context.Context, postID string, comment models.Comment) (*models.Post, error)
	// SetCommentText sets the text of the comment matching commentID on the
	// post matching postID. ErrNotFound means no post matched both ids.
	SetCommentText(ctx context.Context, postID, commentID, text string) (*models.Post, error)
	// PullComment removes every comment matching commentID from the post.
	// Pulling an id that matches no comment still succeeds.
	PullComment(ctx context.Context, postID, commentID string) (*models.Post, error)
	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
	// Close releases the store.
	Close(ctx context.Context) error
}

var (
	_ PostStore = (*BadgerStore)(nil)
	_ PostStore = (*MongoStore)(nil)
	_ PostStore = (*InstrumentedStore)(nil)
)
