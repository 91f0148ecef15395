package interview_coach

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agnivade/interview_coach/providers"
	"github.com/agnivade/interview_coach/session"
)

// Config holds the server settings that are not collaborators.
type Config struct {
	Addr string

	// UpstreamConfigured is reported by the health endpoint.
	UpstreamConfigured bool

	// TranscriberConfig is used for every transcription stream.
	TranscriberConfig providers.SessionConfig
}

type Server struct {
	srv *http.Server
	log *log.Logger

	pending  *session.PendingStore
	registry *Registry

	newUpstream       UpstreamFactory
	transcribers      []providers.Provider
	transcriberConfig providers.SessionConfig
	upstreamOK        bool

	// ctx is cancelled by Stop and ends every relay started under it.
	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	relays sync.WaitGroup
}

// New returns a server relaying sessions to the connections built by
// newUpstream. transcribers, if any, transcribe the candidate's speech in
// place of the voice model.
func New(cfg Config, newUpstream UpstreamFactory, transcribers ...providers.Provider) *Server {
	logger := log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile)
	mux := http.NewServeMux()
	ctx, cancel := context.WithCancel(context.Background())

	server := &Server{
		ctx:    ctx,
		cancel: cancel,
		srv: &http.Server{
			Addr:         cfg.Addr,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
			Handler:      mux,
		},
		log:               logger,
		pending:           session.NewPendingStore(),
		registry:          NewRegistry(),
		newUpstream:       newUpstream,
		transcribers:      transcribers,
		transcriberConfig: cfg.TranscriberConfig,
		upstreamOK:        cfg.UpstreamConfigured,
	}

	mux.HandleFunc("POST /api/sessions", server.handlePrepareSession)
	mux.HandleFunc("GET /api/sessions/{sessionID}/transcript", server.handleTranscript)
	mux.HandleFunc("GET /ws/{sessionID}", server.handleWebSocket)
	mux.HandleFunc("GET /health", server.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	return server
}

func (s *Server) Start() error {
	var wg sync.WaitGroup
	errChan := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.log.Printf("Starting server on %s", s.srv.Addr)
		errChan <- s.srv.ListenAndServe()
	}()

	wg.Wait()
	close(errChan)
	for err := range errChan {
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	return nil
}

// Stop refuses new sessions, stops every live one, shuts the HTTP server
// down and waits for session teardown.
func (s *Server) Stop() error {
	s.log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Hijacked websocket connections are not tracked by Shutdown.
	s.mu.Lock()
	s.cancel()
	s.mu.Unlock()

	err := s.srv.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		s.relays.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.log.Printf("Timed out waiting for %d sessions", s.registry.Len())
		if err == nil {
			err = ctx.Err()
		}
	}
	return err
}

// trackRelay counts a relay that is about to start. It reports false once
// Stop has begun.
func (s *Server) trackRelay() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx.Err() != nil {
		return false
	}
	s.relays.Add(1)
	return true
}

type prepareRequest struct {
	Mode        string   `json:"mode"`
	DossierText string   `json:"dossier_text"`
	Questions   []string `json:"questions"`
}

type prepareResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"session_id"`
	Mode      string `json:"mode"`
}

type transcriptResponse struct {
	Success    bool             `json:"success"`
	Transcript string           `json:"transcript"`
	Raw        []session.Entry  `json:"raw"`
	Progress   session.Progress `json:"progress"`
	State      string           `json:"state"`
}

type healthResponse struct {
	Status             string   `json:"status"`
	UpstreamConfigured bool     `json:"upstream_configured"`
	ActiveSessions     int      `json:"active_sessions"`
	Transcribers       []string `json:"transcribers"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

const maxPrepareBody = 4 << 20

func (s *Server) handlePrepareSession(w http.ResponseWriter, r *http.Request) {
	var req prepareRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPrepareBody)).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	mode, err := session.ParseMode(req.Mode)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if strings.TrimSpace(req.DossierText) == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "dossier_text is required"})
		return
	}

	id := s.pending.Prepare(session.NewDescriptor(mode, req.DossierText, req.Questions))
	s.log.Printf("Prepared %s session %s with %d questions", mode, id, len(req.Questions))

	s.writeJSON(w, http.StatusOK, prepareResponse{Success: true, SessionID: id, Mode: string(mode)})
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	relay, ok := s.registry.Lookup(r.PathValue("sessionID"))
	if !ok {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not active"})
		return
	}

	t := relay.Transcript()
	s.writeJSON(w, http.StatusOK, transcriptResponse{
		Success:    true,
		Transcript: t.Text(),
		Raw:        t.Entries(),
		Progress:   relay.Descriptor().Progress(),
		State:      relay.State().String(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(s.transcribers))
	for _, p := range s.transcribers {
		names = append(names, p.Name())
	}
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:             "healthy",
		UpstreamConfigured: s.upstreamOK,
		ActiveSessions:     s.registry.Len(),
		Transcribers:       names,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Printf("Failed to write response: %v", err)
	}
}
