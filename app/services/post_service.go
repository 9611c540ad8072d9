package services

import (
	"context"

	"postboard/app/models"
	"postboard/app/repositories"
)

// PostService handles business logic for blog posts. Every method issues
// exactly one store call.
type PostService struct {
	store repositories.PostStore
}

// NewPostService creates a new PostService
func NewPostService(store repositories.PostStore) *PostService {
	return &PostService{store: store}
}

// ListPosts retrieves every post in the store's natural order
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.store.Find(ctx)
}

// GetPost retrieves a post by ID with its comments
func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	return s.store.FindByID(ctx, id)
}

// CreatePost stores a new post. The store assigns the id and fills absent
// arrays; comments supplied inline are kept in the given order.
func (s *PostService) CreatePost(ctx context.Context, post *models.Post) error {
	return s.store.Insert(ctx, post)
}

// UpdatePost overwrites the fields present in update and returns the post
// as stored afterwards
func (s *PostService) UpdatePost(ctx context.Context, id string, update models.PostUpdate) (*models.Post, error) {
	return s.store.Replace(ctx, id, update)
}

// DeletePost deletes a post together with its embedded comments and
// returns it as it was before deletion
func (s *PostService) DeletePost(ctx context.Context, id string) (*models.Post, error) {
	return s.store.Delete(ctx, id)
}
