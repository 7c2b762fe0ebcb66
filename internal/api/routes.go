package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes. Chart artifacts are served as
// static files from chartDir.
func SetupRoutes(handler *Handler, chartDir string) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/analyze", handler.Analyze).Methods("POST")
	api.HandleFunc("/watchlist", handler.GetWatchlist).Methods("GET")
	api.HandleFunc("/watchlist", handler.AddToWatchlist).Methods("POST")
	api.HandleFunc("/watchlist", handler.ClearWatchlist).Methods("DELETE")
	api.HandleFunc("/watchlist/confirm", handler.ConfirmAdd).Methods("POST")
	api.HandleFunc("/watchlist/rows", handler.GetRows).Methods("GET")
	api.HandleFunc("/watchlist/{symbol}", handler.RemoveFromWatchlist).Methods("DELETE")

	r.PathPrefix("/charts/").Handler(
		http.StripPrefix("/charts/", http.FileServer(http.Dir(chartDir))))

	return r
}
