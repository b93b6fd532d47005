// Package sessionstore persists the current session so the app can restore
// login state across restarts. The record is sealed with AES-GCM under a
// device-local key before it touches disk, the local stand-in for an
// OS-backed secure store.
package sessionstore

import (
	"context"

	"github.com/dmitrijs2005/finkeeper/internal/models"
)

// Store is the session persistence contract.
type Store interface {
	// Save persists the session, overwriting any prior one.
	Save(ctx context.Context, session *models.SessionRecord) error

	// Load returns the previously saved session, or nil if none exists or
	// the stored data is unreadable. An unreadable session means "not
	// logged in", never a hard failure.
	Load(ctx context.Context) (*models.SessionRecord, error)

	// Clear removes all persisted session data. Clearing an empty store
	// succeeds.
	Clear(ctx context.Context) error
}
