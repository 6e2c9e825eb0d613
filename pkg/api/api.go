package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/notjagan/pokerank/pkg/analysis"
	"github.com/notjagan/pokerank/pkg/chart"
	"github.com/notjagan/pokerank/pkg/export"
	"github.com/notjagan/pokerank/pkg/rank"
	"github.com/notjagan/pokerank/pkg/score"
)

type Server struct {
	analyzer *analysis.Analyzer
	router   *mux.Router
}

func New(a *analysis.Analyzer) *Server {
	s := &Server{
		analyzer: a,
		router:   mux.NewRouter(),
	}

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/types", s.handleTypes).Methods(http.MethodGet)
	api.HandleFunc("/analysis/{types:.+}", s.handleAnalysis).Methods(http.MethodGet)
	api.HandleFunc("/rankings/{axis}", s.handleRankings).Methods(http.MethodGet)
	api.HandleFunc("/export/{size:[0-9]+}.csv", s.handleExport).Methods(http.MethodGet)
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "no such endpoint")
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	log.Printf("Serving rankings on %s.", addr)

	select {
	case err := <-errc:
		return fmt.Errorf("http server stopped: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down.")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}

	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":   http.StatusText(code),
		"message": msg,
		"status":  code,
	})
}

func isBadRequest(err error) bool {
	return errors.Is(err, chart.ErrInvalidType) ||
		errors.Is(err, chart.ErrDuplicateType) ||
		errors.Is(err, chart.ErrInvalidCombinationSize) ||
		errors.Is(err, score.ErrUnknownAxis)
}

func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	if isBadRequest(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	log.Printf("error while handling %s %s: %v", r.Method, r.URL.Path, err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

type typeResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	types := s.analyzer.Chart().Types()
	out := make([]typeResponse, len(types))
	for i, typ := range types {
		out[i] = typeResponse{ID: typ.ID, Name: typ.Name}
	}

	writeJSON(w, out)
}

type scoresResponse struct {
	Defensive float64 `json:"defensive"`
	Offensive float64 `json:"offensive"`
	Total     float64 `json:"total"`
	Average   float64 `json:"average"`
}

func newScoresResponse(s score.Scores) scoresResponse {
	return scoresResponse{
		Defensive: s.Defensive,
		Offensive: s.Offensive,
		Total:     s.Total(),
		Average:   s.Average(),
	}
}

type analysisResponse struct {
	Combination string          `json:"combination"`
	Analysis    export.Analysis `json:"analysis"`
	Scores      scoresResponse  `json:"scores"`
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	names := analysis.SplitNames(mux.Vars(r)["types"])
	res, err := s.analyzer.Analyze(names...)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	writeJSON(w, analysisResponse{
		Combination: res.Profile.Combination.String(),
		Analysis:    export.NewAnalysis(res.Profile),
		Scores:      newScoresResponse(res.Scores),
	})
}

type recordResponse struct {
	Types   []string `json:"types"`
	TypeIDs []int    `json:"type_ids"`
	scoresResponse
}

type rankingsResponse struct {
	Axis    string           `json:"axis"`
	Count   int              `json:"count"`
	Records []recordResponse `json:"records"`
}

var errBadQuery = errors.New("bad query parameter")

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer: %w", key, errBadQuery)
	}
	return v, nil
}

func parseAxis(name string) (score.Axis, error) {
	axis, err := score.AxisString(name)
	if err != nil {
		return 0, fmt.Errorf("axis %q: %w", name, score.ErrUnknownAxis)
	}
	return axis, nil
}

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	axis, err := parseAxis(mux.Vars(r)["axis"])
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	maxSize, err := queryInt(r, "max_size", s.analyzer.MaxSize())
	if err == nil && maxSize == 0 {
		err = fmt.Errorf("max_size must be positive: %w", errBadQuery)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	size, err := queryInt(r, "size", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var records []rank.Record
	if size > 0 {
		records, err = s.analyzer.RankSize(r.Context(), size, axis)
	} else {
		records, err = s.analyzer.Rank(r.Context(), maxSize, axis)
	}
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}

	out := make([]recordResponse, len(records))
	for i, rec := range records {
		out[i] = recordResponse{
			Types:          rec.Combination.Names(),
			TypeIDs:        rec.Combination.IDs(),
			scoresResponse: newScoresResponse(rec.Scores()),
		}
	}

	writeJSON(w, rankingsResponse{
		Axis:    axis.String(),
		Count:   len(out),
		Records: out,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	size, err := strconv.Atoi(mux.Vars(r)["size"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "size must be an integer")
		return
	}

	records, err := s.analyzer.RankSize(r.Context(), size, score.AxisTotal)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	err = export.WriteCSV(w, records, size)
	if err != nil {
		log.Printf("failed to write csv export: %v", err)
	}
}
