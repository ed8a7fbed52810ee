// Package apitest runs an in-process stand-in for the MindMate HTTP API so
// client code can be tested end to end. It is only imported from tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/mindmate-client/internal/common"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
)

// ProfilePath is a protected API route answering 401 without a valid token.
const ProfilePath = "/api/profile"

type user struct {
	id       int
	username string
	password string
}

// Server is a fake MindMate API backed by httptest.Server.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	users      map[string]user
	tokens     map[string]int
	nextID     int
	hits       map[string]int
	lastAuth   map[string]string
	checkBody  string
	dropLogout bool
	dropCheck  bool
}

// New starts a server that is closed when t finishes.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		users:    make(map[string]user),
		tokens:   make(map[string]int),
		hits:     make(map[string]int),
		lastAuth: make(map[string]string),
		nextID:   1,
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	router := httprouter.New()
	chain := alice.New(s.record)

	router.Handler(http.MethodPost, common.EndpointAuthLogin, chain.ThenFunc(s.login))
	router.Handler(http.MethodPost, common.EndpointAuthRegister, chain.ThenFunc(s.register))
	router.Handler(http.MethodGet, common.EndpointAuthCheck, chain.ThenFunc(s.check))
	router.Handler(http.MethodPost, common.EndpointAuthLogout, chain.ThenFunc(s.logout))
	router.Handler(http.MethodGet, ProfilePath, chain.Append(s.requireToken).ThenFunc(s.profile))

	return router
}

// AddUser registers an account and returns its id.
func (s *Server) AddUser(username, password string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(username, password)
}

func (s *Server) addUserLocked(username, password string) int {
	id := s.nextID
	s.nextID++
	s.users[username] = user{id: id, username: username, password: password}
	return id
}

// IssueToken creates a valid token for userID, as a login would.
func (s *Server) IssueToken(userID int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(userID)
}

func (s *Server) issueLocked(userID int) string {
	token := uuid.NewString()
	s.tokens[token] = userID
	return token
}

// TokenActive reports whether token is still accepted.
func (s *Server) TokenActive(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tokens[token]
	return ok
}

// SetCheckBody makes the status endpoint answer with raw instead of the real result.
func (s *Server) SetCheckBody(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkBody = raw
}

// DropLogout makes the logout endpoint close the connection without answering.
func (s *Server) DropLogout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropLogout = true
}

// DropCheck makes the status endpoint close the connection without answering.
func (s *Server) DropCheck() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropCheck = true
}

// Hits returns how many requests reached path.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// LastAuthorization returns the Authorization header of the latest request to path.
func (s *Server) LastAuthorization(path string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuth[path]
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		s.lastAuth[r.URL.Path] = r.Header.Get(common.AuthorizationHeaderName)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.userFor(r); !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) userFor(r *http.Request) (user, bool) {
	token, ok := bearerToken(r.Header.Get(common.AuthorizationHeaderName))
	if !ok {
		return user{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[token]
	if !ok {
		return user{}, false
	}
	for _, u := range s.users {
		if u.id == id {
			return u, true
		}
	}
	return user{}, false
}

type credentialsRequest struct {
	LoginID  string `json:"login_id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.LoginID == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "missing fields"})
		return
	}

	s.mu.Lock()
	u, ok := s.users[req.LoginID]
	if !ok || u.password != req.Password {
		s.mu.Unlock()
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "wrong username or password"})
		return
	}
	token := s.issueLocked(u.id)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"user_id":  u.id,
		"email":    u.username + "@mindmate.local",
		"username": u.username,
		"token":    token,
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "missing fields"})
		return
	}

	s.mu.Lock()
	if _, exists := s.users[req.Username]; exists {
		s.mu.Unlock()
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "username already exists"})
		return
	}
	id := s.addUserLocked(req.Username, req.Password)
	token := s.issueLocked(id)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "user_id": id, "token": token})
}

func (s *Server) check(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	raw, drop := s.checkBody, s.dropCheck
	s.mu.Unlock()

	if drop {
		hangUp(w)
		return
	}
	if raw != "" {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(raw))
		return
	}

	u, ok := s.userFor(r)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          map[string]any{"id": u.id, "username": u.username},
	})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	drop := s.dropLogout
	s.mu.Unlock()

	if drop {
		hangUp(w)
		return
	}

	if token, ok := bearerToken(r.Header.Get(common.AuthorizationHeaderName)); ok {
		s.mu.Lock()
		delete(s.tokens, token)
		s.mu.Unlock()
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	u, _ := s.userFor(r)
	writeJSON(w, http.StatusOK, map[string]any{"id": u.id, "username": u.username})
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}

func hangUp(w http.ResponseWriter) {
	hj, ok := w.(http.Hijacker)
	if !ok {
		panic(http.ErrAbortHandler)
	}
	conn, _, err := hj.Hijack()
	if err != nil {
		panic(http.ErrAbortHandler)
	}
	_ = conn.Close()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
