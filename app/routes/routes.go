package routes

import (
	"log/slog"
	"net/http"

	"postboard/app/controllers"
	"postboard/app/middleware"
	"postboard/app/repositories"
	"postboard/app/services"

	"github.com/gorilla/mux"
)

// SetupRoutes builds the application's route table over store. metrics may
// be nil, in which case nothing is instrumented and /metrics is not served.
func SetupRoutes(store repositories.PostStore, logger *slog.Logger, metrics *middleware.Metrics) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(controllers.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(controllers.MethodNotAllowed)

	if metrics != nil {
		router.Handle("/metrics", metrics.Handler()).Methods("GET")
	}

	postController := controllers.NewPostController(services.NewPostService(store))
	commentController := controllers.NewCommentController(services.NewCommentService(store))
	healthController := controllers.NewHealthController(store)

	router.HandleFunc("/healthz", healthController.Show).Methods("GET")

	// Posts endpoints
	router.HandleFunc("/posts", postController.Index).Methods("GET")
	router.HandleFunc("/posts", postController.Create).Methods("POST")
	router.HandleFunc("/posts/{id}", postController.Show).Methods("GET")
	router.HandleFunc("/posts/{id}", postController.Edit).Methods("PUT")
	router.HandleFunc("/posts/{id}", postController.Delete).Methods("DELETE")

	// Comments endpoints
	router.HandleFunc("/posts/{postId}/comments", commentController.Create).Methods("POST")
	router.HandleFunc("/posts/{postId}/comments", commentController.Index).Methods("GET")
	router.HandleFunc("/posts/{postId}/comments/{commentId}", commentController.Edit).Methods("PUT")
	router.HandleFunc("/posts/{postId}/comments/{commentId}", commentController.Delete).Methods("DELETE")

	var handler http.Handler = router
	handler = middleware.ContentTypeJSON(handler)
	handler = middleware.Recoverer(logger)(handler)
	if metrics != nil {
		handler = metrics.Instrument(router)(handler)
	}
	handler = middleware.Logger(logger)(handler)
	handler = middleware.RequestID(handler)
	return handler
}
