package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewComment constructs a comment with a freshly minted id.
func NewComment(text, author string) Comment {
	return Comment{
		ID:     primitive.NewObjectID(),
		Text:   text,
		Author: author,
	}
}

// NormalizeComments returns comments with an id assigned to every entry that
// lacks one. A nil slice becomes an empty one.
func NormalizeComments(comments []Comment) []Comment {
	if comments == nil {
		return []Comment{}
	}
	for i := range comments {
		if comments[i].ID.IsZero() {
			comments[i].ID = primitive.NewObjectID()
		}
	}
	return comments
}
