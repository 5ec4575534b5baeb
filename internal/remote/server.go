// Package remote implements the snapshot sync service and its HTTP
// client. The service stores one snapshot blob per user, guarded by
// bearer tokens, and the client plugs into the sync coordinator as its
// cloud store.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mindmirror/mindmirror/internal/repository"
)

type contextKey string

const userIDKey contextKey = "userID"

// Server exposes the sync API over HTTP.
type Server struct {
	auth      *AuthService
	snapshots repository.SnapshotRepo
	logger    *slog.Logger
}

func NewServer(auth *AuthService, snapshots repository.SnapshotRepo, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{auth: auth, snapshots: snapshots, logger: logger}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(requestLogger(s.logger))
	r.Use(recovery(s.logger))

	r.Get("/health", s.handleHealth)
	r.Post("/v1/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.bearerAuth)
		r.Post("/v1/logout", s.handleLogout)
		r.Route("/v1/snapshots/{userID}", func(r chi.Router) {
			r.Get("/", s.handleGetSnapshot)
			r.Put("/", s.handlePutSnapshot)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
}

// handleLogin handles POST /v1/login. Unknown emails are signed up.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrAuthFailed) {
			writeError(w, http.StatusUnauthorized, "authentication failed")
			return
		}
		s.logger.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{UserID: userID, Token: token})
}

// handleLogout handles POST /v1/logout, revoking the presented token.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if err := s.auth.Logout(r.Context(), token); err != nil {
		s.logger.Error("logout failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetSnapshot handles GET /v1/snapshots/{userID}.
func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUser(w, r)
	if !ok {
		return
	}

	stored, err := s.snapshots.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no snapshot")
			return
		}
		s.logger.Error("snapshot load failed", "user", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(stored.Data)
}

// handlePutSnapshot handles PUT /v1/snapshots/{userID}. The body must be
// a snapshot document; its lastSavedAt stamps the stored row.
func (s *Server) handlePutSnapshot(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUser(w, r)
	if !ok {
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading body")
		return
	}
	var stamp struct {
		LastSavedAt int64 `json:"lastSavedAt"`
	}
	if err := json.Unmarshal(data, &stamp); err != nil {
		writeError(w, http.StatusBadRequest, "invalid snapshot document")
		return
	}

	err = s.snapshots.Put(r.Context(), &repository.StoredSnapshot{
		Scope:       userID,
		Data:        data,
		LastSavedAt: stamp.LastSavedAt,
	})
	if err != nil {
		s.logger.Error("snapshot store failed", "user", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathUser checks that the path's userID matches the authenticated user.
func (s *Server) pathUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := chi.URLParam(r, "userID")
	if authed, _ := r.Context().Value(userIDKey).(string); authed != userID {
		writeError(w, http.StatusForbidden, "forbidden")
		return "", false
	}
	return userID, true
}

// bearerAuth resolves Authorization: Bearer <token> to a user ID.
func (s *Server) bearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		userID, err := s.auth.Resolve(r.Context(), token)
		if err != nil {
			if errors.Is(err, ErrAuthFailed) {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			s.logger.Error("token resolve failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return token
	}
	return ""
}

// requestLogger logs request method, path, status, and duration.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// recovery catches panics and returns a 500.
func recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered", "error", err, "path", r.URL.Path)
					writeError(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
