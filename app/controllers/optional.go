package controllers

import (
	"bytes"
	"encoding/json"
)

// optional records whether a JSON field was present in the body. A present
// null leaves Value at its zero value.
type optional[T any] struct {
	Set   bool
	Value T
}

func (o *optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// ptr returns nil for an absent field and a pointer to the decoded (or
// zero) value otherwise.
func (o optional[T]) ptr() *T {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}
