package services

import (
	"context"
	"fmt"

	"postboard/app/models"
	"postboard/app/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentService handles comments embedded in post documents
type CommentService struct {
	store repositories.PostStore
}

// NewCommentService creates a new CommentService
func NewCommentService(store repositories.PostStore) *CommentService {
	return &CommentService{store: store}
}

// AddComment constructs a comment with a fresh id, appends it to the post
// and returns the appended comment as stored
func (s *CommentService) AddComment(ctx context.Context, postID, text, author string) (*models.Comment, error) {
	comment := models.NewComment(text, author)

	post, err := s.store.PushComment(ctx, postID, comment)
	if err != nil {
		return nil, err
	}

	last, ok := post.LastComment()
	if !ok {
		return nil, fmt.Errorf("comment %s missing after push", comment.ID.Hex())
	}
	return last, nil
}

// ListPostComments retrieves all comments of a post in insertion order
func (s *CommentService) ListPostComments(ctx context.Context, postID string) ([]models.Comment, error) {
	return s.store.FindComments(ctx, postID)
}

// UpdateCommentText changes the text of one comment. The author is never
// changed.
func (s *CommentService) UpdateCommentText(ctx context.Context, postID, commentID, text string) (*models.Comment, error) {
	post, err := s.store.SetCommentText(ctx, postID, commentID, text)
	if err != nil {
		return nil, err
	}

	cid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, err
	}
	comment, ok := post.FindComment(cid)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return comment, nil
}

// DeleteComment pulls a comment from its post. Only an unknown post is
// reported as ErrNotFound; pulling an unknown comment id from an existing
// post succeeds without changing it.
func (s *CommentService) DeleteComment(ctx context.Context, postID, commentID string) error {
	_, err := s.store.PullComment(ctx, postID, commentID)
	return err
}
