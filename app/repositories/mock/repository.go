package mock

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"postboard/app/models"
	"postboard/app/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostStore is an in-memory repositories.PostStore for tests.
type PostStore struct {
	posts map[primitive.ObjectID]*models.Post
	order []primitive.ObjectID
	mutex sync.RWMutex

	// Err, when set, is returned by every call instead of touching the data.
	Err error
	// Calls counts store calls by method name.
	Calls map[string]int
}

func NewPostStore() *PostStore {
	return &PostStore{
		posts: make(map[primitive.ObjectID]*models.Post),
		Calls: make(map[string]int),
	}
}

func (m *PostStore) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.posts = make(map[primitive.ObjectID]*models.Post)
	m.order = nil
	m.Calls = make(map[string]int)
}

// call records a call and returns the injected error, if any. The caller
// must hold the mutex.
func (m *PostStore) call(name string) error {
	m.Calls[name]++
	return m.Err
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return oid, fmt.Errorf("%w %q: %v", repositories.ErrInvalidID, id, err)
	}
	return oid, nil
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	c.Tags = append([]string{}, p.Tags...)
	c.Comments = append([]models.Comment{}, p.Comments...)
	return &c
}

func (m *PostStore) Find(_ context.Context) ([]*models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if err := m.call("Find"); err != nil {
		return nil, err
	}

	posts := []*models.Post{}
	for _, id := range m.order {
		if post, exists := m.posts[id]; exists {
			posts = append(posts, clonePost(post))
		}
	}
	return posts, nil
}

func (m *PostStore) FindByID(_ context.Context, id string) (*models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if err := m.call("FindByID"); err != nil {
		return nil, err
	}
	return m.get(id)
}

func (m *PostStore) FindComments(_ context.Context, id string) ([]models.Comment, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if err := m.call("FindComments"); err != nil {
		return nil, err
	}

	post, err := m.get(id)
	if err != nil {
		return nil, err
	}
	return post.Comments, nil
}

func (m *PostStore) Insert(_ context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if err := m.call("Insert"); err != nil {
		return err
	}

	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return err
	}
	m.posts[post.ID] = clonePost(post)
	m.order = append(m.order, post.ID)
	return nil
}

func (m *PostStore) Replace(_ context.Context, id string, update models.PostUpdate) (*models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if err := m.call("Replace"); err != nil {
		return nil, err
	}
	return m.modify(id, func(post *models.Post) error {
		post.Apply(update)
		return nil
	})
}

func (m *PostStore) Delete(_ context.Context, id string) (*models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if err := m.call("Delete"); err != nil {
		return nil, err
	}

	post, err := m.get(id)
	if err != nil {
		return nil, err
	}
	delete(m.posts, post.ID)
	return post, nil
}

func (m *PostStore) PushComment(_ context.Context, postID string, comment models.Comment) (*models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if err := m.call("PushComment"); err != nil {
		return nil, err
	}
	return m.modify(postID, func(post *models.Post) error {
		return post.AddComment(comment)
	})
}

func (m *PostStore) SetCommentText(_ context.Context, postID, commentID, text string) (*models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if err := m.call("SetCommentText"); err != nil {
		return nil, err
	}

	cid, err := parseID(commentID)
	if err != nil {
		return nil, err
	}
	return m.modify(postID, func(post *models.Post) error {
		comment, ok := post.FindComment(cid)
		if !ok {
			return repositories.ErrNotFound
		}
		comment.Text = text
		return nil
	})
}

func (m *PostStore) PullComment(_ context.Context, postID, commentID string) (*models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if err := m.call("PullComment"); err != nil {
		return nil, err
	}

	cid, err := parseID(commentID)
	if err != nil {
		return nil, err
	}
	return m.modify(postID, func(post *models.Post) error {
		post.RemoveComment(cid)
		return nil
	})
}

func (m *PostStore) Ping(_ context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.call("Ping")
}

func (m *PostStore) Close(_ context.Context) error {
	return nil
}

func (m *PostStore) get(id string) (*models.Post, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	post, exists := m.posts[oid]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return clonePost(post), nil
}

func (m *PostStore) modify(id string, fn func(post *models.Post) error) (*models.Post, error) {
	post, err := m.get(id)
	if err != nil {
		return nil, err
	}
	if err := fn(post); err != nil {
		return nil, err
	}
	if err := post.Validate(); err != nil {
		return nil, errors.Join(errors.New("post validation failed"), err)
	}
	m.posts[post.ID] = clonePost(post)
	return post, nil
}

var _ repositories.PostStore = (*PostStore)(nil)
