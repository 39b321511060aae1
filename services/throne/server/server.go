package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	scraper "throne-backend/lib/scrapers/throne"
	"throne-backend/services/throne"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// query carries the parameters shared by every endpoint, validated
// before any upstream fetch happens.
type query struct {
	Username        string `validate:"required"`
	Id              string
	DisplayCurrency string `validate:"omitempty,iso4217"`
	Time            string
}

type Server struct {
	service throne.Service
	version string
}

type Options struct {
	Version string
}

// Register mounts every wishlist endpoint onto the mux.
func Register(mux *http.ServeMux, service throne.Service, opts Options) {
	s := &Server{
		service: service,
		version: opts.Version,
	}

	mux.HandleFunc("GET /rawData/Gifted", s.handleRawGifted)
	mux.HandleFunc("GET /rawData/Wishlist", s.handleRawWishlist)
	mux.HandleFunc("GET /getCleaned", s.handleCleaned)

	mux.HandleFunc("GET /user/Info", s.handleUserInfo)
	mux.HandleFunc("GET /user/Socials", s.handleUserSocials)
	mux.HandleFunc("GET /user/Categories", s.handleUserCategories)
	mux.HandleFunc("GET /user/Interests", s.handleUserInterests)

	mux.HandleFunc("GET /collections", s.handleCollections)
	mux.HandleFunc("GET /collections/Detailed", s.handleCollectionsDetailed)
	mux.HandleFunc("GET /collections/Collection", s.handleCollection)
	mux.HandleFunc("GET /collections/Items", s.handleCollectionItems)

	mux.HandleFunc("GET /items", s.handleItems)
	mux.HandleFunc("GET /items/Detailed", s.handleItemsDetailed)
	mux.HandleFunc("GET /items/Item", s.handleItem)

	mux.HandleFunc("GET /previousGifts", s.handleGifts)
	mux.HandleFunc("GET /previousGifts/Detailed", s.handleGiftsDetailed)
	mux.HandleFunc("GET /previousGifts/Gift", s.handleGift)
	mux.HandleFunc("GET /previousGifts/latest", s.handleLatestGift)
	mux.HandleFunc("GET /previousGifts/total", s.handleTotal)

	mux.HandleFunc("GET /gifters/latest", s.handleLatestGifters)
	mux.HandleFunc("GET /gifters/last20", s.handleLast20)
	mux.HandleFunc("GET /gifters/all", s.handleAllGifters)
	mux.HandleFunc("GET /gifters/leaderboard", s.handleLeaderboard)

	mux.HandleFunc("GET /version", s.handleVersion)
	mux.HandleFunc("GET /test", s.handleTest)
}

func parseQuery(r *http.Request) (query, error) {
	values := r.URL.Query()
	q := query{
		Username:        values.Get("username"),
		Id:              values.Get("id"),
		DisplayCurrency: strings.ToUpper(values.Get("displayCurrency")),
		Time:            values.Get("time"),
	}
	err := validate.Struct(q)
	if err != nil {
		return q, fmt.Errorf("invalid query parameters: %w", err)
	}
	return q, nil
}

func (s *Server) query(w http.ResponseWriter, r *http.Request) (query, bool) {
	q, err := parseQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return q, false
	}
	return q, true
}

// requireId rejects single-entity views called without an id.
func (s *Server) requireId(w http.ResponseWriter, q query) bool {
	if q.Id == "" {
		http.Error(w, "invalid query parameters: id is required", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(value)
	if err != nil {
		slog.Warn("failed to encode response", "err", err)
	}
}

// writeError maps pipeline failures onto the documented status codes.
// Every error is terminal for the request; there is no degraded-mode
// response.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var dataShape *throne.DataShapeError
	var status scraper.StatusError

	switch {
	case errors.Is(err, throne.ErrInvalidTimePeriod):
		http.Error(w, "Invalid time period", http.StatusBadRequest)
	case errors.As(err, &dataShape):
		slog.ErrorContext(r.Context(), "unexpected upstream data shape", "err", err)
		http.Error(w, "Throne has changed the format of their embedded data, please contact the developer to fix this issue", http.StatusInternalServerError)
	case errors.Is(err, scraper.ErrNoEmbeddedData):
		slog.ErrorContext(r.Context(), "embedded data blob missing", "err", err)
		http.Error(w, "Throne has removed the embedded data from their page", http.StatusInternalServerError)
	case errors.As(err, &status):
		slog.ErrorContext(r.Context(), "upstream fetch failed", "status", status.Code)
		http.Error(w, fmt.Sprintf("upstream returned status %d", status.Code), http.StatusInternalServerError)
	default:
		slog.ErrorContext(r.Context(), "request failed", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) handleRawGifted(w http.ResponseWriter, r *http.Request) {
	q, ok := s.query(w, r)
	if !ok {
		return
	}
	raw, err := s.service.RawGifted(r.Context(), q.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, raw)
}

func (s *Server) handleRawWishlist(w http.ResponseWriter, r *http.Request) {
	q, ok := s.query(w, r)
	if !ok {
		return
	}
	raw, err := s.service.RawWishlist(r.Context(), q.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, raw)
}

func (s *Server) handleCleaned(w http.ResponseWriter, r *http.Request) {
	q, ok := s.query(w, r)
	if !ok {
		return
	}
	rec, err := s.service.Record(r.Context(), q.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cleaned, err := rec.Cleaned()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, cleaned)
}

func (s *Server) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	q, ok := s.query(w, r)
	if !ok {
		return
	}
	rec, err := s.service.Record(r.Context(), q.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, throne.BuildUserInfo(rec))
}

func (s *Server) handleUserSocials(w http.ResponseWriter, r *http.Request) {
	q, ok := s.query(w, r)
	if !ok {
		return
	}
	rec, err := s.service.Record(r.Context(), q.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, throne.BuildUserSocials(rec))
}

func (s *Server) handleUserCategories(w http.ResponseWriter, r *http.Request) {
	q, ok := s.query(w, r)
	if !ok {
		return
	}
	rec, err := s.service.Record(r.Context(), q.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, throne.BuildUserCategories(rec))
}

func (s *Server) handleUserInterests(w http.ResponseWriter, r *http.Request) {
	q, ok := s.query(w, r)
	if !ok {
		return
	}
	rec, err := s.service.Record(r.Context(), q.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, throne.BuildUserInterests(rec))
}

func (s *Server) handleCollections(w http.ResponseWriter, r *http.Request) {
	q, ok := s.query(w, r)
	if !ok {
		return
	}
	rec, err := s.service.Record(r.Context(), q.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, throne.BuildCollections(rec))
}

func (s *Server) handleCollectionsDetailed(w http.ResponseWriter, r *http.Request) {
	q, ok := s.query(w, r)
	if !ok {
		return
	}
	rec, err := s.service.Record(r.Context(), q.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := throne.BuildCollectionsDetailed(r.Context(), rec, s.service.Converter(), q.DisplayCurrency)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, view)
}

func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request) {
	q, ok := s.query(w, r)
	if !ok || !s.requireId(w, q) {
		return
	}
	rec, err := s.service.Record(r.Context(), q.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := throne.BuildCollection(r.Context(), rec, s.service.Converter(), q.Id, q.DisplayCurrency)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, view)
}

func (s *Server) handleCollectionItems(w http.ResponseWriter, r *http.Request) {
	q, ok := s.query(w, r)
	if !ok || !s.requireId(w, q) {
		return
	}
	rec, err := s.service.Record(r.Context(), q.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, throne.BuildCollectionItems(rec, q.Id))
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	q, ok := s.query(w, r)
	if !ok {
		return
	}
	rec, err := s.service.Record(r.Context(), q.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, throne.BuildItems(rec))
}

func (s *Server) handleItemsDetailed(w http.ResponseWriter, r *http.Request) {
	q, ok := s.query(w, r)
	if !ok {
		return
	}
	rec, err := s.service.Record(r.Context(), q.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, throne.BuildItemsDetailed(rec))
}

func (s *Server) handleItem(w http.ResponseWriter, r *http.Request) {
	q, ok := s.query(w, r)
	if !ok || !s.requireId(w, q) {
		return
	}
	rec, err := s.service.Record(r.Context(), q.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := throne.BuildItem(r.Context(), rec, s.service.Converter(), q.Id, q.DisplayCurrency)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, view)
}

func (s *Server) handleGifts(w http.ResponseWriter, r *http.Request) {
	q, ok := s.query(w, r)
	if !ok {
		return
	}
	rec, err := s.service.Record(r.Context(), q.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, throne.BuildGifts(rec))
}

func (s *Server) handleGiftsDetailed(w http.ResponseWriter, r *http.Request) {
	q, ok := s.query(w, r)
	if !ok {
		return
	}
	rec, err := s.service.Record(r.Context(), q.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, throne.BuildGiftsDetailed(rec))
}

func (s *Server) handleGift(w http.ResponseWriter, r *http.Request) {
	q, ok := s.query(w, r)
	if !ok || !s.requireId(w, q) {
		return
	}
	rec, err := s.service.Record(r.Context(), q.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := throne.BuildGift(r.Context(), rec, s.service.Converter(), q.Id, q.DisplayCurrency)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, view)
}

func (s *Server) handleLatestGift(w http.ResponseWriter, r *http.Request) {
	q, ok := s.query(w, r)
	if !ok {
		return
	}
	rec, err := s.service.Record(r.Context(), q.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := throne.BuildLatestGift(r.Context(), rec, s.service.Converter(), q.DisplayCurrency)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, view)
}

func (s *Server) handleTotal(w http.ResponseWriter, r *http.Request) {
	q, ok := s.query(w, r)
	if !ok {
		return
	}
	rec, err := s.service.Record(r.Context(), q.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := throne.BuildTotal(r.Context(), rec, s.service.Converter(), q.DisplayCurrency)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, view)
}

func (s *Server) handleLatestGifters(w http.ResponseWriter, r *http.Request) {
	q, ok := s.query(w, r)
	if !ok {
		return
	}
	rec, err := s.service.Record(r.Context(), q.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := throne.BuildLatestGifters(r.Context(), rec, s.service.Converter(), q.DisplayCurrency)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, view)
}

func (s *Server) handleLast20(w http.ResponseWriter, r *http.Request) {
	q, ok := s.query(w, r)
	if !ok {
		return
	}
	rec, err := s.service.Record(r.Context(), q.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, throne.BuildLast20(rec))
}

func (s *Server) handleAllGifters(w http.ResponseWriter, r *http.Request) {
	q, ok := s.query(w, r)
	if !ok {
		return
	}
	rec, err := s.service.Record(r.Context(), q.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, throne.BuildAllGifters(rec))
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	q, ok := s.query(w, r)
	if !ok {
		return
	}
	rec, err := s.service.Record(r.Context(), q.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := throne.BuildLeaderboard(rec, q.Time)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, view)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.version)
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	q, ok := s.query(w, r)
	if !ok {
		return
	}
	writeJSON(w, s.service.Probe(r.Context(), q.Username, q.DisplayCurrency))
}
