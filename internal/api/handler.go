// Package api serves read-only lookups over the item collection.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/systmms/dataseeder/internal/auction"
	"github.com/systmms/dataseeder/internal/logging"
	"github.com/systmms/dataseeder/internal/metrics"
	"github.com/systmms/dataseeder/internal/store"
)

// maxBodyBytes caps POST bodies
const maxBodyBytes = 10 << 20

// Handler holds the read-only collection handle shared by every request
type Handler struct {
	coll    store.ItemCollection
	logger  *logging.Logger
	metrics *metrics.HTTPMetrics
}

// NewHandler creates a Handler
func NewHandler(coll store.ItemCollection, logger *logging.Logger) *Handler {
	metrics.InitMetrics()
	return &Handler{
		coll:    coll,
		logger:  logger,
		metrics: metrics.NewHTTPMetrics(),
	}
}

// Router returns the routes wrapped in the request logging, metrics and
// CORS middleware
func (h *Handler) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(h.instrument)

	r.HandleFunc("/", h.HandleRoot).Methods(http.MethodGet)
	r.HandleFunc("/health", h.HandleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/api/get/{key}/{value}", h.HandleGetByPath).Methods(http.MethodGet)
	r.HandleFunc("/api/get", h.HandleGetByQuery).Methods(http.MethodGet)
	r.HandleFunc("/api/getJson", h.HandleGetJSON).Methods(http.MethodPost)
	r.HandleFunc("/api/getAll", h.HandleGetAll).Methods(http.MethodGet)

	return allowAllOrigins(r)
}

// HandleRoot answers the liveness probe
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "helloworld")
}

// HandleHealth reports OK while the process is serving
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// HandleGetByPath serves GET /api/get/{key}/{value}[?type=int]
func (h *Handler) HandleGetByPath(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	h.lookup(w, r, vars["key"], vars["value"], r.URL.Query().Get("type"))
}

// HandleGetByQuery serves GET /api/get?key=&value=[&type=int]
func (h *Handler) HandleGetByQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.lookup(w, r, q.Get("key"), q.Get("value"), q.Get("type"))
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request, key, raw, typeName string) {
	if key == "" {
		writeError(w, http.StatusBadRequest, "key is required")
		return
	}

	kind, err := auction.ParseValueKind(typeName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	value, err := auction.ParseValue(raw, kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.find(w, r, auction.NewFilter(key, value))
}

// getJSONRequest is the POST /api/getJson body; value is a string or an integer
type getJSONRequest struct {
	Key   string              `json:"key"`
	Value *auction.FieldValue `json:"value"`
}

// HandleGetJSON serves POST /api/getJson with a {key, value} body
func (h *Handler) HandleGetJSON(w http.ResponseWriter, r *http.Request) {
	var req getJSONRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Key == "" || req.Value == nil {
		writeError(w, http.StatusBadRequest, "key and value are required")
		return
	}

	h.find(w, r, auction.NewFilter(req.Key, *req.Value))
}

// HandleGetAll serves GET /api/getAll
func (h *Handler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	h.find(w, r, auction.Filter{})
}

func (h *Handler) find(w http.ResponseWriter, r *http.Request, filter auction.Filter) {
	h.logger.Debug("find %s", filter)

	docs, err := h.coll.Find(r.Context(), filter)
	if err != nil {
		h.logger.Error("find %s: %v", filter, err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve documents")
		return
	}

	h.metrics.RecordDocuments(routeName(r), len(docs))
	writeJSON(w, http.StatusOK, auction.PrintableAll(docs))
}

// errorResponse is the body of every non-2xx answer
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Status: "error", Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
