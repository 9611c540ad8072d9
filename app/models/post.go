package models

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Validate checks the document invariants a store enforces before a write.
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	return ValidateComments(p.Comments)
}

// ValidateComments rejects comment arrays carrying the same id twice.
// Comments without an id are skipped; they receive fresh ids on write.
func ValidateComments(comments []Comment) error {
	seen := make(map[primitive.ObjectID]struct{}, len(comments))
	for _, c := range comments {
		if c.ID.IsZero() {
			continue
		}
		if _, dup := seen[c.ID]; dup {
			return errors.New("duplicate comment id " + c.ID.Hex())
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}

// BeforeCreate fills the defaults a newly stored post receives.
func (p *Post) BeforeCreate() {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	p.Normalize()
}

// Normalize replaces nil arrays with empty ones and assigns ids to
// comments that arrived without one.
func (p *Post) Normalize() {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	p.Comments = NormalizeComments(p.Comments)
}

// Apply overwrites every field set in the update.
func (p *Post) Apply(u PostUpdate) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Content != nil {
		p.Content = *u.Content
	}
	if u.Author != nil {
		p.Author = *u.Author
	}
	if u.Tags != nil {
		p.Tags = *u.Tags
	}
	if u.Comments != nil {
		p.Comments = *u.Comments
	}
	p.Normalize()
}

// AddComment appends a comment to the end of the post's comments
func (p *Post) AddComment(comment Comment) error {
	if comment.ID.IsZero() {
		return errors.New("comment id cannot be empty")
	}

	p.Comments = append(p.Comments, comment)
	return nil
}

// RemoveComment removes the comment with the given id, keeping the order of
// the rest. It reports whether a comment was removed.
func (p *Post) RemoveComment(commentID primitive.ObjectID) bool {
	for i, comment := range p.Comments {
		if comment.ID == commentID {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			return true
		}
	}
	return false
}

// FindComment returns the comment with the given id.
func (p *Post) FindComment(commentID primitive.ObjectID) (*Comment, bool) {
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return &p.Comments[i], true
		}
	}
	return nil, false
}

// LastComment returns the most recently appended comment.
func (p *Post) LastComment() (*Comment, bool) {
	if len(p.Comments) == 0 {
		return nil, false
	}
	return &p.Comments[len(p.Comments)-1], true
}
