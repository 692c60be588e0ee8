package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"apexbank/internal/auth"
	"apexbank/internal/logger"
	"apexbank/internal/mockdata"
	"apexbank/internal/models"
	"apexbank/internal/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Context key type to avoid collisions.
type contextKey string

const (
	// UserContextKey is the context key for the authenticated user.
	UserContextKey contextKey = "user"
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "session"
	// DefaultSessionDuration is how long sessions last (30 days).
	DefaultSessionDuration = 30 * 24 * time.Hour
)

const clientContextKey contextKey = "client"

// client is the per-cookie state: the sign-in simulator plus the card locks
// toggled during the session. Requests for one cookie may run concurrently,
// so every access holds mu.
type client struct {
	mu      sync.Mutex
	session auth.Provider
	locked  map[string]bool
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	db              *storage.DB
	data            *mockdata.Dataset
	password        auth.Password
	secureCookie    bool
	sessionDuration time.Duration

	mu      sync.Mutex
	clients map[string]*client
}

// Options configures NewHandlers.
type Options struct {
	SecureCookie    bool
	SessionDuration time.Duration
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *storage.DB, data *mockdata.Dataset, password auth.Password, opts Options) *Handlers {
	if opts.SessionDuration <= 0 {
		opts.SessionDuration = DefaultSessionDuration
	}
	return &Handlers{
		db:              db,
		data:            data,
		password:        password,
		secureCookie:    opts.SecureCookie,
		sessionDuration: opts.SessionDuration,
		clients:         make(map[string]*client),
	}
}

// Routes registers the API under r.
func (h *Handlers) Routes(r chi.Router) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/otp", h.VerifyOTP)
		r.Post("/otp/resend", h.ResendOTP)
		r.Post("/logout", h.Logout)
		r.Get("/session", h.SessionStatus)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.AuthMiddleware)

		r.Get("/api/me", h.Me)
		r.Get("/api/dashboard", h.Dashboard)
		r.Get("/api/accounts", h.ListAccounts)
		r.Get("/api/accounts/{id}", h.GetAccount)
		r.Get("/api/accounts/{id}/transactions", h.AccountTransactions)
		r.Get("/api/transactions", h.ListTransactions)
		r.Get("/api/transactions/export.csv", h.ExportTransactions)
		r.Get("/api/transactions/{id}", h.GetTransaction)
		r.Get("/api/statistics", h.Statistics)
		r.Get("/api/cards", h.ListCards)
		r.Post("/api/cards/{id}/lock", h.ToggleCardLock)
		r.Get("/api/bills", h.ListBills)
		r.Get("/api/investments", h.Investments)
		r.Get("/api/notifications", h.ListNotifications)
		r.Get("/api/transfers/options", h.TransferOptions)
		r.Post("/api/transfers", h.CreateTransfer)
	})
}

// GetUserFromContext retrieves the authenticated user from request context.
func GetUserFromContext(r *http.Request) *models.UserProfile {
	if user, ok := r.Context().Value(UserContextKey).(*models.UserProfile); ok {
		return user
	}
	return nil
}

func clientFromContext(r *http.Request) *client {
	c, _ := r.Context().Value(clientContextKey).(*client)
	return c
}

// AuthMiddleware wraps handlers to require a signed-in session.
// It also implements rolling sessions: if a session is past the halfway point
// of its lifetime, it automatically renews the session.
func (h *Handlers) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			writeError(w, http.StatusUnauthorized, "Not signed in", "")
			return
		}

		sessionInfo, err := h.db.ValidateSessionWithInfo(cookie.Value)
		if err != nil {
			// Invalid or expired session, clear the cookie
			h.dropClient(cookie.Value)
			h.clearSessionCookie(w)
			writeError(w, http.StatusUnauthorized, "Session expired", "")
			return
		}

		// Rolling session: renew if past halfway point
		now := time.Now()
		if sessionInfo.ExpiresAt.Sub(now) < h.sessionDuration/2 {
			if err := h.db.RenewSession(cookie.Value, now.Add(h.sessionDuration)); err != nil {
				logger.Get().Warn("failed to renew session", zap.Error(err))
			} else {
				h.setSessionCookie(w, cookie.Value)
			}
		}

		c, err := h.loadClient(r.Context(), cookie.Value)
		if err != nil {
			logger.Get().Error("failed to load client session", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Internal server error", "")
			return
		}

		c.mu.Lock()
		state := c.session.State()
		c.mu.Unlock()
		if state.Status() != auth.Authenticated {
			writeError(w, http.StatusUnauthorized, "Not signed in", "")
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, state.User)
		ctx = context.WithValue(ctx, clientContextKey, c)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loadClient returns the state for token, restoring a persisted login the
// first time the token is seen by this process.
func (h *Handlers) loadClient(ctx context.Context, token string) (*client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.clients[token]; ok {
		return c, nil
	}
	session := auth.NewSession(h.data, h.password, h.db, storageKey(token))
	if err := session.Restore(ctx); err != nil {
		return nil, err
	}
	c := &client{session: session, locked: make(map[string]bool)}
	h.clients[token] = c
	return c, nil
}

// newClient builds an anonymous client for token without registering it.
func (h *Handlers) newClient(token string) *client {
	return &client{
		session: auth.NewSession(h.data, h.password, h.db, storageKey(token)),
		locked:  make(map[string]bool),
	}
}

// PruneStats reports what PruneExpired removed.
type PruneStats struct {
	Sessions int64
	Logins   int64
	Clients  int
}

// PruneExpired deletes expired browser sessions, the saved logins that
// belonged to them and their in-memory clients.
func (h *Handlers) PruneExpired(ctx context.Context) (PruneStats, error) {
	var stats PruneStats
	removed, err := h.db.CleanExpiredSessions()
	if err != nil {
		return stats, err
	}
	stats.Sessions = removed

	logins, err := h.db.RemoveOrphanedKeys(ctx, storageKey(""))
	if err != nil {
		return stats, err
	}
	stats.Logins = logins

	h.mu.Lock()
	defer h.mu.Unlock()
	for token := range h.clients {
		exists, err := h.db.SessionExists(token)
		if err != nil {
			return stats, err
		}
		if !exists {
			delete(h.clients, token)
			stats.Clients++
		}
	}
	return stats, nil
}

func (h *Handlers) dropClient(token string) {
	h.mu.Lock()
	delete(h.clients, token)
	h.mu.Unlock()
}

// ClientCount reports how many cookie sessions are held in memory.
func (h *Handlers) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func storageKey(token string) string {
	return auth.StorageKey + ":" + token
}

func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Get().Warn("failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg, kind string) {
	writeJSON(w, status, errorResponse{Error: msg, Kind: kind})
}
