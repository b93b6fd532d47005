package sessionstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/cryptox"
	"github.com/dmitrijs2005/finkeeper/internal/dbx"
	"github.com/dmitrijs2005/finkeeper/internal/models"
)

const (
	keyData  = "data"
	keyNonce = "nonce"
)

// sealSalt is the fixed argon2 salt for deriving the seal key from the
// device secret. The secret itself is random per device, so a fixed salt
// does not enable cross-device precomputation.
var sealSalt = []byte("finkeeper.session.v1")

// SQLiteStore keeps the sealed session in a key-value table of the local
// database. Both the ciphertext and its nonce are written in one
// transaction so a reader never observes a torn pair.
type SQLiteStore struct {
	db      *sql.DB
	sealKey []byte
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore builds a store over db, sealing records under a key derived
// from deviceSecret.
func NewSQLiteStore(db *sql.DB, deviceSecret []byte) *SQLiteStore {
	return &SQLiteStore{db: db, sealKey: cryptox.DeriveKey(deviceSecret, sealSalt)}
}

func (s *SQLiteStore) Save(ctx context.Context, session *models.SessionRecord) error {
	ciphertext, nonce, err := cryptox.SealEntry(session, s.sealKey)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.set(ctx, tx, keyData, ciphertext); err != nil {
			return err
		}
		return s.set(ctx, tx, keyNonce, nonce)
	})
	if err != nil {
		return fmt.Errorf("%w: saving session: %v", common.ErrStorage, err)
	}
	return nil
}

// Load returns nil when no session is stored or when the stored data cannot
// be read or unsealed. A corrupt session is indistinguishable from an absent
// one on purpose: the caller falls back to anonymous state.
func (s *SQLiteStore) Load(ctx context.Context) (*models.SessionRecord, error) {
	ciphertext, err := s.get(ctx, keyData)
	if err != nil || ciphertext == nil {
		return nil, nil
	}
	nonce, err := s.get(ctx, keyNonce)
	if err != nil || nonce == nil {
		return nil, nil
	}

	var session models.SessionRecord
	if err := cryptox.OpenEntry(ciphertext, nonce, s.sealKey, &session); err != nil {
		return nil, nil
	}
	return &session, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("%w: clearing session: %v", common.ErrStorage, err)
	}
	return nil
}

func (s *SQLiteStore) set(ctx context.Context, tx dbx.DBTX, key string, value []byte) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}
