// Package models defines the persisted and session-level record types of the
// auth core.
package models

import (
	"strings"
	"time"
)

// Role classifies an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// UserRecord is one registered identity as persisted in the user-store file.
// PasswordDigest holds the salted digest only; the plaintext password is
// never stored anywhere.
type UserRecord struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone,omitempty"`
	Salt           string            `json:"salt"`
	PasswordDigest string            `json:"passwordDigest"`
	Role           Role              `json:"role"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
	LastLogin      *time.Time        `json:"lastLogin,omitempty"`
	Preferences    map[string]string `json:"preferences,omitempty"`
	Profile        map[string]string `json:"profile,omitempty"`
}

// UserStoreFile is the durable container persisted as a single JSON document
// of the shape {"users": [...]}.
type UserStoreFile struct {
	Users []UserRecord `json:"users"`
}

// NormalizeEmail produces the canonical form used for uniqueness checks and
// lookups: trimmed and lower-cased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
