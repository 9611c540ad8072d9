package repositories

import (
	"context"
	"errors"
	"time"

	"postboard/app/models"

	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentedStore records the latency and outcome of every store call.
type InstrumentedStore struct {
	next     PostStore
	observer prometheus.ObserverVec
}

// Instrument wraps next so each operation is observed in observer, labelled
// by operation and outcome (ok, not_found, error).
func Instrument(next PostStore, observer prometheus.ObserverVec) *InstrumentedStore {
	return &InstrumentedStore{next: next, observer: observer}
}

func (s *InstrumentedStore) observe(op string, start time.Time, err error) {
	outcome := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		outcome = "not_found"
	case err != nil:
		outcome = "error"
	}
	s.observer.WithLabelValues(op, outcome).Observe(time.Since(start).Seconds())
}

func (s *InstrumentedStore) Find(ctx context.Context) ([]*models.Post, error) {
	start := time.Now()
	posts, err := s.next.Find(ctx)
	s.observe("find", start, err)
	return posts, err
}

func (s *InstrumentedStore) FindByID(ctx context.Context, id string) (*models.Post, error) {
	start := time.Now()
	post, err := s.next.FindByID(ctx, id)
	s.observe("find_by_id", start, err)
	return post, err
}

func (s *InstrumentedStore) FindComments(ctx context.Context, id string) ([]models.Comment, error) {
	start := time.Now()
	comments, err := s.next.FindComments(ctx, id)
	s.observe("find_comments", start, err)
	return comments, err
}

func (s *InstrumentedStore) Insert(ctx context.Context, post *models.Post) error {
	start := time.Now()
	err := s.next.Insert(ctx, post)
	s.observe("insert", start, err)
	return err
}

func (s *InstrumentedStore) Replace(ctx context.Context, id string, update models.PostUpdate) (*models.Post, error) {
	start := time.Now()
	post, err := s.next.Replace(ctx, id, update)
	s.observe("replace", start, err)
	return post, err
}

func (s *InstrumentedStore) Delete(ctx context.Context, id string) (*models.Post, error) {
	start := time.Now()
	post, err := s.next.Delete(ctx, id)
	s.observe("delete", start, err)
	return post, err
}

func (s *InstrumentedStore) PushComment(ctx context.Context, postID string, comment models.Comment) (*models.Post, error) {
	start := time.Now()
	post, err := s.next.PushComment(ctx, postID, comment)
	s.observe("push_comment", start, err)
	return post, err
}

func (s *InstrumentedStore) SetCommentText(ctx context.Context, postID, commentID, text string) (*models.Post, error) {
	start := time.Now()
	post, err := s.next.SetCommentText(ctx, postID, commentID, text)
	s.observe("set_comment_text", start, err)
	return post, err
}

func (s *InstrumentedStore) PullComment(ctx context.Context, postID, commentID string) (*models.Post, error) {
	start := time.Now()
	post, err := s.next.PullComment(ctx, postID, commentID)
	s.observe("pull_comment", start, err)
	return post, err
}

func (s *InstrumentedStore) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

func (s *InstrumentedStore) Close(ctx context.Context) error {
	return s.next.Close(ctx)
}
