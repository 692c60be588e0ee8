// Package auth simulates the demo's two-step sign-in: a shared password
// followed by a per-user one-time passcode. It is not a security boundary.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"apexbank/internal/models"
)

// StorageKey is the local-storage key holding the signed-in profile.
const StorageKey = "apexbank_user"

// Status is the position of a session in the sign-in flow.
type Status string

const (
	Anonymous           Status = "anonymous"
	PendingVerification Status = "pending-verification"
	Authenticated       Status = "authenticated"
)

// FailureKind names which check rejected a sign-in step.
type FailureKind string

const (
	CredentialMismatch FailureKind = "credential-mismatch"
	OTPMismatch        FailureKind = "otp-mismatch"
)

var (
	// ErrCredentialMismatch matches every failed Login.
	ErrCredentialMismatch = errors.New(string(CredentialMismatch))
	// ErrOTPMismatch matches every failed VerifyOTP.
	ErrOTPMismatch = errors.New(string(OTPMismatch))
)

// Result reports the outcome of a sign-in step.
type Result struct {
	Success bool        `json:"success"`
	Kind    FailureKind `json:"kind,omitempty"`
	Message string      `json:"error,omitempty"`
}

// Err converts a failed result into an error matching ErrCredentialMismatch
// or ErrOTPMismatch, and a successful one into nil.
func (r Result) Err() error {
	switch {
	case r.Success:
		return nil
	case r.Kind == OTPMismatch:
		return fmt.Errorf("%w: %s", ErrOTPMismatch, r.Message)
	default:
		return fmt.Errorf("%w: %s", ErrCredentialMismatch, r.Message)
	}
}

func ok() Result { return Result{Success: true} }

func fail(kind FailureKind, msg string) Result {
	return Result{Kind: kind, Message: msg}
}

// State is a snapshot of a session. A signed-in user may start a new login,
// so User and Pending can both be set.
type State struct {
	User    *models.UserProfile
	Pending *models.UserProfile
}

// Status derives the flow position from the state. A signed-in user stays
// authenticated while a second login waits for its passcode.
func (s State) Status() Status {
	switch {
	case s.User != nil:
		return Authenticated
	case s.Pending != nil:
		return PendingVerification
	}
	return Anonymous
}

// Verifying reports whether a login is waiting for its passcode.
func (s State) Verifying() bool {
	return s.Pending != nil
}

// Directory resolves users and their passcodes.
type Directory interface {
	UserByID(id string) (models.UserProfile, bool)
	UserByEmail(email string) (models.UserProfile, bool)
	ValidOTP(userID, otp string) bool
}

// Persister is the key/value store that survives restarts, the analogue of
// browser local storage.
type Persister interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Provider is the read/update surface of a session handed to callers.
type Provider interface {
	State() State
	Login(email, password string) Result
	VerifyOTP(ctx context.Context, otp string) (Result, error)
	Logout(ctx context.Context) error
	ResendOTP() Result
}

// Session runs the sign-in state machine for one client. It is not safe for
// concurrent use; callers serialise access.
type Session struct {
	dir      Directory
	password Password
	store    Persister
	key      string
	state    State
}

var _ Provider = (*Session)(nil)

// NewSession creates an anonymous session persisting under key.
func NewSession(dir Directory, password Password, store Persister, key string) *Session {
	if key == "" {
		key = StorageKey
	}
	return &Session{dir: dir, password: password, store: store, key: key}
}

// Restore loads a previously persisted profile. Unreadable records and
// records for users missing from the directory are removed, and the session
// stays anonymous.
func (s *Session) Restore(ctx context.Context) error {
	raw, found, err := s.store.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	if !found {
		return nil
	}

	var stored models.UserProfile
	err = json.Unmarshal(raw, &stored)
	user, known := s.dir.UserByID(stored.ID)
	if err != nil || stored.ID == "" || !known {
		if err := s.store.Remove(ctx, s.key); err != nil {
			return fmt.Errorf("failed to discard malformed session: %w", err)
		}
		return nil
	}
	s.state = State{User: &user}
	return nil
}

// State returns a copy of the current state.
func (s *Session) State() State {
	return s.state
}

// Login checks the email and the shared password. On success the user
// waits for passcode verification.
func (s *Session) Login(email, password string) Result {
	if strings.TrimSpace(email) == "" || password == "" {
		return fail(CredentialMismatch, "Email and password are required")
	}
	user, found := s.dir.UserByEmail(email)
	if !found {
		return fail(CredentialMismatch, "No account found with this email")
	}
	if !s.password.Matches(password) {
		return fail(CredentialMismatch, "Incorrect password")
	}
	s.state.Pending = &user
	return ok()
}

// VerifyOTP completes a pending login and persists the profile. The
// returned error reports storage failures only; the session is signed in
// regardless.
func (s *Session) VerifyOTP(ctx context.Context, otp string) (Result, error) {
	pending := s.state.Pending
	if pending == nil {
		return fail(OTPMismatch, "No pending login session"), nil
	}
	if !s.dir.ValidOTP(pending.ID, strings.TrimSpace(otp)) {
		return fail(OTPMismatch, "Invalid verification code"), nil
	}

	s.state = State{User: pending}

	raw, err := json.Marshal(pending)
	if err != nil {
		return ok(), fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.store.Set(ctx, s.key, raw); err != nil {
		return ok(), fmt.Errorf("failed to persist session: %w", err)
	}
	return ok(), nil
}

// Logout clears the session and its persisted record.
func (s *Session) Logout(ctx context.Context) error {
	s.state = State{}
	if err := s.store.Remove(ctx, s.key); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// ResendOTP pretends to send a new code. Codes are static, so it only
// confirms that a login is waiting.
func (s *Session) ResendOTP() Result {
	if s.state.Pending == nil {
		return fail(OTPMismatch, "No pending login session")
	}
	return ok()
}
