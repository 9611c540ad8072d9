package repositories

import (
	"context"
	"fmt"

	"postboard/app/models"

	"github.com/dgraph-io/badger/v4"
)

// Find retrieves every post in key order, which follows creation order
func (s *BadgerStore) Find(_ context.Context) ([]*models.Post, error) {
	posts := []*models.Post{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var post models.Post
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post %s: %v", item.Key(), err)
			}
			post.Normalize()
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// FindByID retrieves a post by ID
func (s *BadgerStore) FindByID(_ context.Context, id string) (*models.Post, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var post *models.Post
	err = s.db.View(func(txn *badger.Txn) error {
		post, err = getPost(txn, oid)
		return err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// FindComments retrieves only the comments of a post
func (s *BadgerStore) FindComments(ctx context.Context, id string) ([]models.Comment, error) {
	post, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return post.Comments, nil
}

// Insert stores a new post
func (s *BadgerStore) Insert(_ context.Context, post *models.Post) error {
	post.BeforeCreate()
	return s.db.Update(func(txn *badger.Txn) error {
		return putPost(txn, post)
	})
}

// Replace overwrites the fields set in update
func (s *BadgerStore) Replace(_ context.Context, id string, update models.PostUpdate) (*models.Post, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.modifyPost(oid, func(post *models.Post) error {
		post.Apply(update)
		return nil
	})
}

// Delete deletes a post and returns it as it was before removal
func (s *BadgerStore) Delete(_ context.Context, id string) (*models.Post, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var deleted *models.Post
	err = retryOnConflict(s.db, func(txn *badger.Txn) error {
		post, err := getPost(txn, oid)
		if err != nil {
			return err
		}
		deleted = post
		return txn.Delete(postKey(oid))
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
