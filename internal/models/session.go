package models

// SessionRecord is the profile the UI layer works with after a successful
// registration or login. It deliberately carries no salt or digest material:
// anything persisted about the session must be safe to restore into memory.
type SessionRecord struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	Token string `json:"token"`
}

// SessionFromUser builds the session view of a user record with the given
// freshly minted token.
func SessionFromUser(u *UserRecord, token string) *SessionRecord {
	return &SessionRecord{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
		Token: token,
	}
}
