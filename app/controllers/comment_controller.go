package controllers

import (
	"net/http"

	"postboard/app/services"

	"github.com/gorilla/mux"
)

const postOrCommentNotFound = "Post or comment not found"

// CommentController handles HTTP requests for comments embedded in a post
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

type createCommentRequest struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

type updateCommentRequest struct {
	Text string `json:"text"`
}

// Create handles appending a comment to a post
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	var req createCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	comment, err := cc.commentService.AddComment(r.Context(), mux.Vars(r)["postId"], req.Text, req.Author)
	if err != nil {
		sendStoreError(w, err, postNotFound)
		return
	}
	sendJSON(w, http.StatusCreated, comment)
}

// Index handles listing the comments of a post
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	comments, err := cc.commentService.ListPostComments(r.Context(), mux.Vars(r)["postId"])
	if err != nil {
		sendStoreError(w, err, postNotFound)
		return
	}
	sendJSON(w, http.StatusOK, comments)
}

// Edit handles changing the text of a comment
func (cc *CommentController) Edit(w http.ResponseWriter, r *http.Request) {
	var req updateCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	comment, err := cc.commentService.UpdateCommentText(r.Context(), vars["postId"], vars["commentId"], req.Text)
	if err != nil {
		sendStoreError(w, err, postOrCommentNotFound)
		return
	}
	sendJSON(w, http.StatusOK, comment)
}

// Delete handles removing a comment. Removing a comment id the post does
// not carry still succeeds as long as the post exists.
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := cc.commentService.DeleteComment(r.Context(), vars["postId"], vars["commentId"]); err != nil {
		sendStoreError(w, err, postOrCommentNotFound)
		return
	}
	sendMessage(w, "Comment deleted successfully", http.StatusOK)
}
