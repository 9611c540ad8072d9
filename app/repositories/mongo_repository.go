package repositories

import (
	"context"
	"errors"
	"fmt"

	"postboard/app/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements PostStore on a MongoDB collection, using the server's
// atomic update operators for the embedded comments array.
type MongoStore struct {
	coll       *mongo.Collection
	ownsClient bool
}

// MongoOptions configures OpenMongo.
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
}

// OpenMongo connects to MongoDB and returns a store on the configured
// collection. Close disconnects the client.
func OpenMongo(ctx context.Context, o MongoOptions) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(o.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	store := NewMongoStore(client.Database(o.Database).Collection(o.Collection))
	store.ownsClient = true
	return store, nil
}

// NewMongoStore wraps an existing collection. The caller keeps ownership of
// the client.
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// Close disconnects the client if the store created it.
func (s *MongoStore) Close(ctx context.Context) error {
	if !s.ownsClient {
		return nil
	}
	return s.coll.Database().Client().Disconnect(ctx)
}

// Ping runs the ping command against the store's database.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.coll.Database().RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// Find retrieves every post in natural order
func (s *MongoStore) Find(ctx context.Context) ([]*models.Post, error) {
	cursor, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	posts := []*models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	for _, post := range posts {
		post.Normalize()
	}
	return posts, nil
}

// FindByID retrieves a post by ID
func (s *MongoStore) FindByID(ctx context.Context, id string) (*models.Post, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return decodePost(s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}))
}

// FindComments retrieves a post projected down to its comments
func (s *MongoStore) FindComments(ctx context.Context, id string) ([]models.Comment, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	opts := options.FindOne().SetProjection(bson.D{{Key: "comments", Value: 1}})
	post, err := decodePost(s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}, opts))
	if err != nil {
		return nil, err
	}
	return post.Comments, nil
}

// Insert stores a new post
func (s *MongoStore) Insert(ctx context.Context, post *models.Post) error {
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return fmt.Errorf("post validation failed: %w", err)
	}
	_, err := s.coll.InsertOne(ctx, post)
	return err
}

// Replace sets the fields present in update
func (s *MongoStore) Replace(ctx context.Context, id string, update models.PostUpdate) (*models.Post, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if update.Comments != nil {
		if err := models.ValidateComments(*update.Comments); err != nil {
			return nil, fmt.Errorf("post validation failed: %w", err)
		}
	}

	set := updateFields(update)
	if len(set) == 0 {
		return decodePost(s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}))
	}
	return s.findOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: set}})
}

// Delete deletes a post and returns it as it was before removal
func (s *MongoStore) Delete(ctx context.Context, id string) (*models.Post, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return decodePost(s.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}))
}

// PushComment appends a comment with $push
func (s *MongoStore) PushComment(ctx context.Context, postID string, comment models.Comment) (*models.Post, error) {
	oid, err := parseID(postID)
	if err != nil {
		return nil, err
	}
	if comment.ID.IsZero() {
		return nil, errors.New("comment id cannot be empty")
	}

	update := bson.D{{Key: "$push", Value: bson.D{{Key: "comments", Value: comment}}}}
	return s.findOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update)
}

// SetCommentText updates one comment's text with the positional operator
func (s *MongoStore) SetCommentText(ctx context.Context, postID, commentID, text string) (*models.Post, error) {
	oid, err := parseID(postID)
	if err != nil {
		return nil, err
	}
	cid, err := parseID(commentID)
	if err != nil {
		return nil, err
	}

	filter := bson.D{
		{Key: "_id", Value: oid},
		{Key: "comments._id", Value: cid},
	}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "comments.$.text", Value: text}}}}
	return s.findOneAndUpdate(ctx, filter, update)
}

// PullComment removes a comment with $pull
func (s *MongoStore) PullComment(ctx context.Context, postID, commentID string) (*models.Post, error) {
	oid, err := parseID(postID)
	if err != nil {
		return nil, err
	}
	cid, err := parseID(commentID)
	if err != nil {
		return nil, err
	}

	update := bson.D{{Key: "$pull", Value: bson.D{{Key: "comments", Value: bson.D{{Key: "_id", Value: cid}}}}}}
	return s.findOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update)
}

func (s *MongoStore) findOneAndUpdate(ctx context.Context, filter, update bson.D) (*models.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return decodePost(s.coll.FindOneAndUpdate(ctx, filter, update, opts))
}

// updateFields builds the $set document for a post update
func updateFields(u models.PostUpdate) bson.D {
	set := bson.D{}
	if u.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *u.Title})
	}
	if u.Content != nil {
		set = append(set, bson.E{Key: "content", Value: *u.Content})
	}
	if u.Author != nil {
		set = append(set, bson.E{Key: "author", Value: *u.Author})
	}
	if u.Tags != nil {
		tags := *u.Tags
		if tags == nil {
			tags = []string{}
		}
		set = append(set, bson.E{Key: "tags", Value: tags})
	}
	if u.Comments != nil {
		set = append(set, bson.E{Key: "comments", Value: models.NormalizeComments(*u.Comments)})
	}
	return set
}

// decodePost maps a single result onto a post, translating a missing
// document into ErrNotFound
func decodePost(res *mongo.SingleResult) (*models.Post, error) {
	var post models.Post
	if err := res.Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	post.Normalize()
	return &post, nil
}
