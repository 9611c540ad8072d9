package repositories

import (
	"errors"
	"sync/atomic"
	"testing"

	"postboard/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseID(t *testing.T) {
	t.Run("valid hex", func(t *testing.T) {
		id := primitive.NewObjectID()
		parsed, err := parseID(id.Hex())
		assert.NoError(t, err)
		assert.Equal(t, id, parsed)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := parseID("not-an-id")
		assert.ErrorIs(t, err, ErrInvalidID)
		assert.Contains(t, err.Error(), `"not-an-id"`)
	})
}

func TestPostKey(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, "post:"+id.Hex(), string(postKey(id)))
}

func TestMarshalEntity(t *testing.T) {
	t.Run("marshal post", func(t *testing.T) {
		post := &models.Post{
			ID:       primitive.NewObjectID(),
			Title:    "Test Post",
			Content:  "Test Content",
			Tags:     []string{"a", "b"},
			Comments: []models.Comment{models.NewComment("hi", "bob")},
		}

		data, err := marshalEntity(post)
		assert.NoError(t, err)
		assert.NotEmpty(t, data)

		var unmarshaled models.Post
		err = unmarshalEntity(data, &unmarshaled)
		assert.NoError(t, err)
		assert.Equal(t, post, &unmarshaled)
	})

	t.Run("marshal invalid entity", func(t *testing.T) {
		_, err := marshalEntity(struct{ Ch chan int }{Ch: make(chan int)})
		assert.Error(t, err)
	})

	t.Run("unmarshal garbage", func(t *testing.T) {
		var post models.Post
		err := unmarshalEntity([]byte{0x01, 0x02}, &post)
		assert.Error(t, err)
	})
}

func TestRetryOnConflict(t *testing.T) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	t.Run("stops on success", func(t *testing.T) {
		var runs int32
		err := retryOnConflict(db, func(txn *badger.Txn) error {
			atomic.AddInt32(&runs, 1)
			return txn.Set([]byte("k"), []byte("v"))
		})
		assert.NoError(t, err)
		assert.Equal(t, int32(1), runs)
	})

	t.Run("does not retry other errors", func(t *testing.T) {
		boom := errors.New("boom")
		var runs int32
		err := retryOnConflict(db, func(txn *badger.Txn) error {
			atomic.AddInt32(&runs, 1)
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, int32(1), runs)
	})

	t.Run("retries conflicts", func(t *testing.T) {
		var runs int32
		err := retryOnConflict(db, func(txn *badger.Txn) error {
			if atomic.AddInt32(&runs, 1) < 3 {
				return badger.ErrConflict
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, int32(3), runs)
	})

	t.Run("gives up after the limit", func(t *testing.T) {
		var runs int32
		err := retryOnConflict(db, func(txn *badger.Txn) error {
			atomic.AddInt32(&runs, 1)
			return badger.ErrConflict
		})
		assert.ErrorIs(t, err, badger.ErrConflict)
		assert.Equal(t, int32(maxConflictRetries), runs)
	})
}
