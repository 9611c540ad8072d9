package models

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Post represents a blog post document with its embedded comments.
type Post struct {
	ID       primitive.ObjectID `json:"id" bson:"_id" validate:"required"`
	Title    string             `json:"title" bson:"title"`
	Content  string             `json:"content" bson:"content"`
	Author   string             `json:"author" bson:"author"`
	Tags     []string           `json:"tags" bson:"tags"`
	Comments []Comment          `json:"comments" bson:"comments" validate:"dive"`
}

// Comment represents a comment embedded in a post document.
type Comment struct {
	ID     primitive.ObjectID `json:"id" bson:"_id" validate:"required"`
	Text   string             `json:"text" bson:"text"`
	Author string             `json:"author" bson:"author"`
}

// PostUpdate carries the fields of a post replacement. A nil field is left
// unchanged by the store; a pointer to a zero value clears the field.
type PostUpdate struct {
	Title    *string
	Content  *string
	Author   *string
	Tags     *[]string
	Comments *[]Comment
}
