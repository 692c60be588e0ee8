package models

import "time"

// Session represents a browser session cookie issued by the web server.
type Session struct {
	Token        string    `json:"token"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	ExpiresAt    time.Time `json:"expires_at"`
}
