// Package common contains shared constants and sentinel errors used across
// MindMate client components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer credential
// on outbound requests.
const AuthorizationHeaderName = "Authorization"

// Local storage keys holding the session.
const (
	StorageKeyAuthToken = "auth_token"
	StorageKeyUserID    = "user_id"
	StorageKeyUsername  = "username"
)

// SessionStorageKeys lists every key removed on logout.
var SessionStorageKeys = []string{StorageKeyAuthToken, StorageKeyUserID, StorageKeyUsername}

// Server API endpoints.
const (
	EndpointAuthCheck    = "/api/auth/check"
	EndpointAuthLogout   = "/api/auth/logout"
	EndpointAuthLogin    = "/api/auth/login"
	EndpointAuthRegister = "/api/auth/register"
)

// LoginPath is where unauthenticated users are sent.
const LoginPath = "/login"

// PublicPaths are pages exempt from the client-side authentication gate.
var PublicPaths = []string{"/login", "/register", "/", "/test-login"}

// LogMaskValue replaces secrets in log output.
const LogMaskValue = "xxxxxx"
