package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"apexbank/internal/auth"
	"apexbank/internal/logger"
	"apexbank/internal/models"

	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type otpRequest struct {
	OTP string `json:"otp"`
}

// sessionResponse describes where a client is in the sign-in flow.
// PendingVerification is also set when a signed-in client starts a new login.
type sessionResponse struct {
	Status              auth.Status        `json:"status"`
	PendingVerification bool               `json:"pendingVerification,omitempty"`
	User                *models.PublicUser `json:"user,omitempty"`
}

func newSessionResponse(state auth.State) sessionResponse {
	resp := sessionResponse{Status: state.Status(), PendingVerification: state.Verifying()}
	if state.User != nil {
		u := state.User.Public()
		resp.User = &u
	}
	return resp
}

// activeToken returns the caller's cookie token when it names a live
// session. A stale token is forgotten.
func (h *Handlers) activeToken(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	if _, err := h.db.ValidateSessionWithInfo(cookie.Value); err != nil {
		h.dropClient(cookie.Value)
		return "", false
	}
	return cookie.Value, true
}

// startSession records a browser session for a client whose login
// succeeded and hands it the cookie.
func (h *Handlers) startSession(w http.ResponseWriter, token string, c *client) error {
	if err := h.db.CreateSession(token, time.Now().Add(h.sessionDuration)); err != nil {
		return err
	}
	h.mu.Lock()
	h.clients[token] = c
	h.mu.Unlock()
	h.setSessionCookie(w, token)
	return nil
}

// existingClient loads the client for a request that must already hold a
// valid session cookie. It writes the error response itself.
func (h *Handlers) existingClient(w http.ResponseWriter, r *http.Request) (*client, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusUnauthorized, "No pending login session", string(auth.OTPMismatch))
		return nil, false
	}
	if _, err := h.db.ValidateSessionWithInfo(cookie.Value); err != nil {
		h.dropClient(cookie.Value)
		h.clearSessionCookie(w)
		writeError(w, http.StatusUnauthorized, "Session expired", "")
		return nil, false
	}
	c, err := h.loadClient(r.Context(), cookie.Value)
	if err != nil {
		logger.Get().Error("failed to load client session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error", "")
		return nil, false
	}
	return c, true
}

func writeResult(w http.ResponseWriter, res auth.Result, state auth.State) {
	if !res.Success {
		writeError(w, http.StatusUnprocessableEntity, res.Message, string(res.Kind))
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(state))
}

// Login checks the email and demo password and starts passcode verification.
// A browser session is only issued once the credentials are accepted.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	if token, ok := h.activeToken(r); ok {
		c, err := h.loadClient(r.Context(), token)
		if err != nil {
			logger.Get().Error("failed to load client session", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Internal server error", "")
			return
		}
		c.mu.Lock()
		res := c.session.Login(req.Email, req.Password)
		state := c.session.State()
		c.mu.Unlock()
		if !res.Success {
			logger.Get().Info("login rejected", zap.String("reason", res.Message))
		}
		writeResult(w, res, state)
		return
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		logger.Get().Error("failed to generate session token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "An error occurred. Please try again.", "")
		return
	}
	c := h.newClient(token)
	res := c.session.Login(req.Email, req.Password)
	if !res.Success {
		logger.Get().Info("login rejected", zap.String("reason", res.Message))
		writeResult(w, res, c.session.State())
		return
	}
	if err := h.startSession(w, token, c); err != nil {
		logger.Get().Error("failed to create session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "An error occurred. Please try again.", "")
		return
	}
	writeResult(w, res, c.session.State())
}

// VerifyOTP completes a pending login.
func (h *Handlers) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	c, ok := h.existingClient(w, r)
	if !ok {
		return
	}

	c.mu.Lock()
	res, err := c.session.VerifyOTP(r.Context(), req.OTP)
	state := c.session.State()
	c.mu.Unlock()

	if err != nil {
		logger.Get().Error("failed to persist login", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	if res.Success {
		logger.Get().Info("user signed in", zap.String("user_id", state.User.ID))
	}
	writeResult(w, res, state)
}

// ResendOTP acknowledges a request for a new passcode.
func (h *Handlers) ResendOTP(w http.ResponseWriter, r *http.Request) {
	c, ok := h.existingClient(w, r)
	if !ok {
		return
	}

	c.mu.Lock()
	res := c.session.ResendOTP()
	state := c.session.State()
	c.mu.Unlock()

	writeResult(w, res, state)
}

// Logout handles user logout.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		c, err := h.loadClient(r.Context(), cookie.Value)
		if err != nil {
			logger.Get().Error("failed to load client session", zap.Error(err))
		} else {
			c.mu.Lock()
			err = c.session.Logout(r.Context())
			c.mu.Unlock()
			if err != nil {
				logger.Get().Error("failed to clear persisted login", zap.Error(err))
			}
		}
		if err := h.db.DeleteSession(cookie.Value); err != nil {
			logger.Get().Error("failed to delete session", zap.Error(err))
		}
		h.dropClient(cookie.Value)
	}
	h.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, sessionResponse{Status: auth.Anonymous})
}

// SessionStatus reports the sign-in state of the caller.
func (h *Handlers) SessionStatus(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		writeJSON(w, http.StatusOK, sessionResponse{Status: auth.Anonymous})
		return
	}
	if _, err := h.db.ValidateSessionWithInfo(cookie.Value); err != nil {
		writeJSON(w, http.StatusOK, sessionResponse{Status: auth.Anonymous})
		return
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
	writeJSON(w, http.StatusOK, newSessionResponse(state))
}

// Me returns the signed-in profile.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, GetUserFromContext(r).Public())
}
