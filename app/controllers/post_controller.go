package controllers

import (
	"net/http"

	"postboard/app/models"
	"postboard/app/services"

	"github.com/gorilla/mux"
)

const postNotFound = "Post not found"

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

type createPostRequest struct {
	Title    string           `json:"title"`
	Content  string           `json:"content"`
	Author   string           `json:"author"`
	Tags     []string         `json:"tags"`
	Comments []models.Comment `json:"comments"`
}

// updatePostRequest tells absent fields, which are left as stored, from
// fields sent as null, which are cleared.
type updatePostRequest struct {
	Title    optional[string]           `json:"title"`
	Content  optional[string]           `json:"content"`
	Author   optional[string]           `json:"author"`
	Tags     optional[[]string]         `json:"tags"`
	Comments optional[[]models.Comment] `json:"comments"`
}

func (u updatePostRequest) toUpdate() models.PostUpdate {
	return models.PostUpdate{
		Title:    u.Title.ptr(),
		Content:  u.Content.ptr(),
		Author:   u.Author.ptr(),
		Tags:     u.Tags.ptr(),
		Comments: u.Comments.ptr(),
	}
}

// Index handles listing all posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts(r.Context())
	if err != nil {
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	post, err := pc.postService.GetPost(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		sendStoreError(w, err, postNotFound)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	post := &models.Post{
		Title:    req.Title,
		Content:  req.Content,
		Author:   req.Author,
		Tags:     req.Tags,
		Comments: req.Comments,
	}
	if err := pc.postService.CreatePost(r.Context(), post); err != nil {
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusCreated, post)
}

// Edit handles replacing the fields of an existing post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	var req updatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, err := pc.postService.UpdatePost(r.Context(), mux.Vars(r)["id"], req.toUpdate())
	if err != nil {
		sendStoreError(w, err, postNotFound)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Delete handles deleting a post and responds with the deleted document
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	post, err := pc.postService.DeletePost(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		sendStoreError(w, err, postNotFound)
		return
	}
	sendJSON(w, http.StatusOK, post)
}
