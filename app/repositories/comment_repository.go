package repositories

import (
	"context"

	"postboard/app/models"
)

// PushComment appends a comment to the end of a post's comments
func (s *BadgerStore) PushComment(_ context.Context, postID string, comment models.Comment) (*models.Post, error) {
	oid, err := parseID(postID)
	if err != nil {
		return nil, err
	}
	return s.modifyPost(oid, func(post *models.Post) error {
		return post.AddComment(comment)
	})
}

// SetCommentText updates the text of one embedded comment. A post without a
// matching comment counts as not found.
func (s *BadgerStore) SetCommentText(_ context.Context, postID, commentID, text string) (*models.Post, error) {
	oid, err := parseID(postID)
	if err != nil {
		return nil, err
	}
	cid, err := parseID(commentID)
	if err != nil {
		return nil, err
	}
	return s.modifyPost(oid, func(post *models.Post) error {
		comment, ok := post.FindComment(cid)
		if !ok {
			return ErrNotFound
		}
		comment.Text = text
		return nil
	})
}

// PullComment removes a comment from a post. Only a missing post is an
// error; an unknown comment id leaves the post as it is.
func (s *BadgerStore) PullComment(_ context.Context, postID, commentID string) (*models.Post, error) {
	oid, err := parseID(postID)
	if err != nil {
		return nil, err
	}
	cid, err := parseID(commentID)
	if err != nil {
		return nil, err
	}
	return s.modifyPost(oid, func(post *models.Post) error {
		post.RemoveComment(cid)
		return nil
	})
}
