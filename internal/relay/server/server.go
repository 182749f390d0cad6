// Package server exposes the relay endpoint: one route that turns a JSON
// inquiry payload into an outbound support email. Responses follow the
// original terse contract: plain text bodies, "ok" on success.
package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tiertech/blueprint/internal/relay/config"
	"github.com/tiertech/blueprint/internal/relay/mail"
)

// maxBodyBytes bounds an inbound payload; a full draft is a few KB.
const maxBodyBytes = 64 << 10

type Server struct {
	cfg    config.Config
	sender mail.Sender
	log    *slog.Logger
	mux    *http.ServeMux
	srv    *http.Server
}

func New(cfg config.Config, sender mail.Sender, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{cfg: cfg, sender: sender, log: log, mux: http.NewServeMux()}
	s.mux.HandleFunc("/relay", s.handleRelay)
	return s
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) ListenAndServe() error {
	s.srv = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	s.log.Info("relay listening", "addr", s.cfg.Addr, "cors", s.cfg.CORS)
	return s.srv.ListenAndServe()
}

func (s *Server) handleRelay(w http.ResponseWriter, r *http.Request) {
	if s.cfg.CORS {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	}
	switch r.Method {
	case http.MethodOptions:
		writeText(w, http.StatusOK, "ok")
		return
	case http.MethodPost:
	default:
		writeText(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	if !s.cfg.Configured() {
		writeText(w, http.StatusInternalServerError,
			"Server email is not configured (SMTP_USER/SMTP_PASS missing).")
		return
	}

	// A body that fails to parse is treated as empty, not as a fault; the
	// required-field check below rejects it.
	var inq mail.Inquiry
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err == nil {
		_ = json.Unmarshal(raw, &inq)
	}
	if inq.When == "" {
		inq.When = time.Now().UTC().Format(time.RFC3339)
	}
	if !inq.Valid() {
		writeText(w, http.StatusBadRequest, "email and message are required")
		return
	}

	if err := s.sender.Send(r.Context(), inq); err != nil {
		s.log.Error("smtp send failed", "err", err, "reply_to", inq.Email)
		writeText(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.log.Info("inquiry relayed", "reply_to", inq.Email, "reasons", inq.Reasons, "site", inq.Site)
	writeText(w, http.StatusOK, "ok")
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
