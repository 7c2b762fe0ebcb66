package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"TickerDesk/internal/model"
	"TickerDesk/internal/pipeline"
	"TickerDesk/internal/recorder"
	"TickerDesk/internal/resolver"
	"TickerDesk/internal/table"
	"TickerDesk/internal/watchlist"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pipeline *pipeline.Pipeline
	resolver *resolver.Resolver
	store    *watchlist.Store
	builder  *table.Builder
	recorder recorder.Recorder
}

// NewHandler creates a new Handler.
func NewHandler(p *pipeline.Pipeline, res *resolver.Resolver, store *watchlist.Store, builder *table.Builder, rec recorder.Recorder) *Handler {
	return &Handler{
		pipeline: p,
		resolver: res,
		store:    store,
		builder:  builder,
		recorder: rec,
	}
}

// Analyze handles POST /api/analyze.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result := h.pipeline.Run(r.Context(), req.Query)

	if result.Symbol != "" {
		if err := h.recorder.RecordAnalysis(&recorder.AnalysisEvent{
			Query:       result.Query,
			Symbol:      result.Symbol,
			LatestPrice: result.LatestPrice,
			Valuation:   string(result.Valuation),
			ChartPath:   result.ChartPath,
		}); err != nil {
			log.Printf("[ERROR] record analysis: %v", err)
		}
	}

	respondJSON(w, http.StatusOK, result)
}

// GetWatchlist handles GET /api/watchlist.
func (h *Handler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]string{"symbols": h.store.Symbols()})
}

// addResponse is the result of a watchlist add attempt. When the search
// is ambiguous Matches carries the candidates and nothing is mutated
// until one is confirmed.
type addResponse struct {
	Added   string              `json:"added,omitempty"`
	Name    string              `json:"name,omitempty"`
	Matches []model.SymbolMatch `json:"matches,omitempty"`
}

// AddToWatchlist handles POST /api/watchlist. The query is searched
// against the provider; a single match is added directly, multiple
// matches are returned for the user to disambiguate.
func (h *Handler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	matches, err := h.resolver.Search(r.Context(), req.Query)
	if err != nil {
		http.Error(w, "symbol search unavailable", http.StatusBadGateway)
		return
	}
	if len(matches) == 0 {
		http.Error(w, "no matches found", http.StatusNotFound)
		return
	}
	if len(matches) > 1 {
		respondJSON(w, http.StatusOK, addResponse{Matches: matches})
		return
	}

	h.addSymbol(w, matches[0].Symbol, matches[0].Name)
}

// ConfirmAdd handles POST /api/watchlist/confirm with an exact symbol
// picked from a previous ambiguous search.
func (h *Handler) ConfirmAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Symbol string `json:"symbol"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h.addSymbol(w, req.Symbol, "")
}

func (h *Handler) addSymbol(w http.ResponseWriter, symbol, name string) {
	added, err := h.store.Add(symbol)
	if err != nil {
		if !added {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// The in-memory add succeeded; a save failure is a warning, not a
		// rollback.
		log.Printf("[WARN] %v", err)
	}
	if !added {
		respondJSON(w, http.StatusOK, addResponse{Added: model.NormalizeSymbol(symbol), Name: name})
		return
	}
	respondJSON(w, http.StatusCreated, addResponse{Added: model.NormalizeSymbol(symbol), Name: name})
}

// RemoveFromWatchlist handles DELETE /api/watchlist/{symbol}.
func (h *Handler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	if err := h.store.Remove(symbol); err != nil {
		log.Printf("[WARN] %v", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearWatchlist handles DELETE /api/watchlist.
func (h *Handler) ClearWatchlist(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(); err != nil {
		log.Printf("[WARN] %v", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetRows handles GET /api/watchlist/rows.
func (h *Handler) GetRows(w http.ResponseWriter, r *http.Request) {
	rows := h.builder.BuildRows(r.Context(), h.store.Symbols())
	respondJSON(w, http.StatusOK, map[string][]table.Row{"rows": rows})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}
