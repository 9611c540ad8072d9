package controllers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdatePostRequestDecoding(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, req updatePostRequest)
	}{
		{
			name: "absent fields stay unset",
			body: `{}`,
			check: func(t *testing.T, req updatePostRequest) {
				u := req.toUpdate()
				assert.Nil(t, u.Title)
				assert.Nil(t, u.Content)
				assert.Nil(t, u.Author)
				assert.Nil(t, u.Tags)
				assert.Nil(t, u.Comments)
			},
		},
		{
			name: "null sets the zero value",
			body: `{"title": null, "tags": null, "comments": null}`,
			check: func(t *testing.T, req updatePostRequest) {
				u := req.toUpdate()
				require.NotNil(t, u.Title)
				assert.Equal(t, "", *u.Title)
				require.NotNil(t, u.Tags)
				assert.Nil(t, *u.Tags)
				require.NotNil(t, u.Comments)
				assert.Nil(t, *u.Comments)
				assert.Nil(t, u.Content)
			},
		},
		{
			name: "values are decoded",
			body: `{"content": "body", "tags": ["a", "b"]}`,
			check: func(t *testing.T, req updatePostRequest) {
				u := req.toUpdate()
				require.NotNil(t, u.Content)
				assert.Equal(t, "body", *u.Content)
				require.NotNil(t, u.Tags)
				assert.Equal(t, []string{"a", "b"}, *u.Tags)
				assert.Nil(t, u.Title)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req updatePostRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			tt.check(t, req)
		})
	}
}

func TestUpdatePostRequestRejectsWrongType(t *testing.T) {
	var req updatePostRequest
	assert.Error(t, json.Unmarshal([]byte(`{"tags": "x"}`), &req))
}
