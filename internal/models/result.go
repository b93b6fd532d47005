package models

// AuthResult is the normalized outcome returned to the UI layer by every
// auth-core operation. Exactly one of Session or Message is meaningful:
// on success Session is set, on failure Message carries a human-readable
// reason. No error value ever crosses the auth-core boundary.
type AuthResult struct {
	Success bool           `json:"success"`
	Session *SessionRecord `json:"session,omitempty"`
	Message string         `json:"message,omitempty"`
}

// Succeed wraps a session into a successful result.
func Succeed(s *SessionRecord) AuthResult {
	return AuthResult{Success: true, Session: s}
}

// Fail wraps a failure message into an unsuccessful result.
func Fail(message string) AuthResult {
	return AuthResult{Success: false, Message: message}
}
