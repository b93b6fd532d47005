package userstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/filex"
	"github.com/dmitrijs2005/finkeeper/internal/models"
)

// FileRepository persists the registry as one JSON file. A single in-process
// mutex serializes every operation; the design assumes one app instance and
// does not attempt cross-process locking.
type FileRepository struct {
	mu   sync.Mutex
	path string
}

var _ Repository = (*FileRepository)(nil)

// NewFileRepository returns a repository backed by the file at path.
// The file is created lazily on first read.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) Read(ctx context.Context) (*models.UserStoreFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readLocked()
}

func (r *FileRepository) Write(ctx context.Context, store *models.UserStoreFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeLocked(store)
}

func (r *FileRepository) FindByEmail(ctx context.Context, email string) (*models.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	store, err := r.readLocked()
	if err != nil {
		return nil, err
	}

	needle := models.NormalizeEmail(email)
	for i := range store.Users {
		if models.NormalizeEmail(store.Users[i].Email) == needle {
			u := store.Users[i]
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *FileRepository) Insert(ctx context.Context, user *models.UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	store, err := r.readLocked()
	if err != nil {
		return err
	}

	needle := models.NormalizeEmail(user.Email)
	for i := range store.Users {
		if models.NormalizeEmail(store.Users[i].Email) == needle {
			return common.ErrDuplicateEmail
		}
	}

	store.Users = append(store.Users, *user)
	return r.writeLocked(store)
}

func (r *FileRepository) Update(ctx context.Context, user *models.UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	store, err := r.readLocked()
	if err != nil {
		return err
	}

	for i := range store.Users {
		if store.Users[i].ID == user.ID {
			store.Users[i] = *user
			return r.writeLocked(store)
		}
	}
	return common.ErrNotFound
}

// readLocked loads the current file contents, creating an empty store on
// first access. Callers must hold r.mu.
func (r *FileRepository) readLocked() (*models.UserStoreFile, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			empty := &models.UserStoreFile{Users: []models.UserRecord{}}
			if err := r.writeLocked(empty); err != nil {
				return nil, err
			}
			return empty, nil
		}
		return nil, fmt.Errorf("%w: reading %s: %v", common.ErrStorage, r.path, err)
	}

	var store models.UserStoreFile
	if err := json.Unmarshal(b, &store); err != nil {
		return nil, fmt.Errorf("%w: %s is not valid JSON: %v", common.ErrStorage, r.path, err)
	}
	if store.Users == nil {
		store.Users = []models.UserRecord{}
	}
	return &store, nil
}

// writeLocked replaces the file in full via an atomic rename so a failed
// write cannot corrupt the previous contents. Callers must hold r.mu.
func (r *FileRepository) writeLocked(store *models.UserStoreFile) error {
	b, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshaling store: %v", common.ErrStorage, err)
	}
	if err := filex.WriteFileAtomic(r.path, b, 0o600); err != nil {
		return fmt.Errorf("%w: writing %s: %v", common.ErrStorage, r.path, err)
	}
	return nil
}
