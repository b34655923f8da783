package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/jsphweid/musixbooth/db"
	"github.com/jsphweid/musixbooth/delay"
	"github.com/jsphweid/musixbooth/logger"
	"github.com/jsphweid/musixbooth/model"
	"github.com/jsphweid/musixbooth/scale"
	"github.com/jsphweid/musixbooth/tapper"
	"github.com/pkg/errors"
	"github.com/rs/cors"
)

type Server struct {
	matcher        *scale.Matcher
	tapperConfig   tapper.Config
	store          db.Store
	validate       *validator.Validate
	allowedOrigins []string
	log            *logger.Logger
}

// New wires the HTTP API. store may be nil, which disables /tempo/last.
func New(tapperConfig tapper.Config, store db.Store, allowedOrigins []string) *Server {
	return &Server{
		matcher:        scale.NewMatcher(),
		tapperConfig:   tapperConfig,
		store:          store,
		validate:       validator.New(),
		allowedOrigins: allowedOrigins,
		log:            logger.Default().With("http"),
	}
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(s.requestID, s.logRequests)

	router.HandleFunc("/health", s.HandleHealth).Methods(http.MethodGet)
	router.HandleFunc("/notes", s.HandleNotes).Methods(http.MethodGet)
	router.HandleFunc("/scales", s.HandleScales).Methods(http.MethodGet)
	router.HandleFunc("/scales/match", s.HandleMatch).Methods(http.MethodPost)
	router.HandleFunc("/tempo", s.HandleTempo).Methods(http.MethodPost)
	router.HandleFunc("/tempo/last", s.HandleGetLastTempo).Methods(http.MethodGet)
	router.HandleFunc("/tempo/last", s.HandlePutLastTempo).Methods(http.MethodPut)
	router.HandleFunc("/delay", s.HandleDelay).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         3600,
	})
	return c.Handler(router)
}

func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "http server")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Infof("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Could not decode request body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) HandleNotes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scale.NoteNames())
}

func (s *Server) HandleScales(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.matcher.Catalog())
}

func (s *Server) HandleMatch(w http.ResponseWriter, r *http.Request) {
	var input model.MatchRequestBody
	if !s.decode(w, r, &input) {
		return
	}

	sel := scale.NewSelection(input.Notes...)
	if input.Root != nil {
		sel = sel.SetRoot(*input.Root)
	}
	writeJSON(w, http.StatusOK, model.MatchResponse{
		Notes:   sel.Notes(),
		Matches: s.matcher.MatchSelection(sel),
	})
}

func (s *Server) HandleTempo(w http.ResponseWriter, r *http.Request) {
	var input model.TempoRequestBody
	if !s.decode(w, r, &input) {
		return
	}
	writeJSON(w, http.StatusOK, tapper.Replay(s.tapperConfig, input.Taps))
}

func (s *Server) HandleGetLastTempo(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "No store configured")
		return
	}
	bpm, err := s.store.LoadTempo(r.Context())
	if errors.Is(err, db.ErrNoTempo) {
		writeError(w, http.StatusNotFound, "No tempo stored yet")
		return
	}
	if err != nil {
		s.log.Errorf("loading tempo: %v", err)
		writeError(w, http.StatusInternalServerError, "Could not load tempo")
		return
	}
	writeJSON(w, http.StatusOK, model.LastTempoBody{BPM: bpm})
}

func (s *Server) HandlePutLastTempo(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "No store configured")
		return
	}
	var input model.LastTempoBody
	if !s.decode(w, r, &input) {
		return
	}
	if err := s.store.SaveTempo(r.Context(), input.BPM); err != nil {
		s.log.Errorf("saving tempo: %v", err)
		writeError(w, http.StatusInternalServerError, "Could not save tempo")
		return
	}
	writeJSON(w, http.StatusOK, input)
}

func (s *Server) HandleDelay(w http.ResponseWriter, r *http.Request) {
	bpm := float64(delay.DefaultBPM)
	if raw := r.URL.Query().Get("bpm"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bpm must be a number")
			return
		}
		bpm = parsed
	} else if s.store != nil {
		bpm = float64(db.LoadTempoOr(r.Context(), s.store, delay.DefaultBPM))
	}

	calc, err := delay.NewCalculator(bpm)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, model.DelayResponse{
		BPM:     calc.BPM(),
		Delays:  calc.Delays(),
		Reverbs: calc.Reverbs(),
	})
}
