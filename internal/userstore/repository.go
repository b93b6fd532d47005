// Package userstore owns the durable user registry: a single JSON document
// of the shape {"users": [...]} at a well-known path. No other component
// reads or writes that file directly.
package userstore

import (
	"context"

	"github.com/dmitrijs2005/finkeeper/internal/models"
)

// Repository is the access contract for the user registry.
//
// Every mutating operation is a full read-modify-write cycle over the whole
// store; implementations must serialize mutations so that two inserts for
// the same email cannot race and a lookup never observes a half-written
// record.
type Repository interface {
	// Read returns the current store contents, initializing an empty store
	// on first access. A file that exists but does not parse surfaces
	// common.ErrStorage.
	Read(ctx context.Context) (*models.UserStoreFile, error)

	// Write serializes and replaces the backing file in full. A failed
	// write leaves the previous contents intact.
	Write(ctx context.Context, store *models.UserStoreFile) error

	// FindByEmail looks a record up by case-insensitive email and returns
	// common.ErrNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*models.UserRecord, error)

	// Insert appends a record and persists, rejecting a case-insensitive
	// email collision with common.ErrDuplicateEmail.
	Insert(ctx context.Context, user *models.UserRecord) error

	// Update persists a mutation of an existing record, matched by ID,
	// returning common.ErrNotFound when the record is gone.
	Update(ctx context.Context, user *models.UserRecord) error
}
