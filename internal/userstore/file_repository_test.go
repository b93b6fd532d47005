package userstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/models"
)

func newRepo(t *testing.T) (*FileRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	return NewFileRepository(path), path
}

func sampleUser(email string) *models.UserRecord {
	now := time.Now().UTC()
	return &models.UserRecord{
		ID:             "id-" + email,
		Name:           "Ana",
		Email:          models.NormalizeEmail(email),
		Salt:           "00112233445566778899aabbccddeeff",
		PasswordDigest: "deadbeef",
		Role:           models.RoleUser,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestRead_InitializesEmptyStore(t *testing.T) {
	repo, path := newRepo(t)

	store, err := repo.Read(context.Background())
	require.NoError(t, err)
	require.NotNil(t, store.Users)
	assert.Empty(t, store.Users)

	// the backing file must now exist and hold the empty document
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Contains(t, raw, "users")
}

func TestRead_InvalidJSONIsStorageError(t *testing.T) {
	repo, path := newRepo(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := repo.Read(context.Background())
	require.ErrorIs(t, err, common.ErrStorage)
}

func TestInsertAndFindByEmail_CaseInsensitive(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, sampleUser("ana@example.com")))

	got, err := repo.FindByEmail(ctx, "ANA@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got.Email)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestInsert_DuplicateEmailAnyCase(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, sampleUser("A@b.com")))

	dup := sampleUser("a@B.com")
	dup.ID = "other-id"
	err := repo.Insert(ctx, dup)
	require.ErrorIs(t, err, common.ErrDuplicateEmail)

	store, err := repo.Read(ctx)
	require.NoError(t, err)
	assert.Len(t, store.Users, 1, "store must contain exactly one record for the email")
}

func TestUpdate_PersistsMutation(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	u := sampleUser("ana@example.com")
	require.NoError(t, repo.Insert(ctx, u))

	ts := time.Now().UTC().Truncate(time.Second)
	u.LastLogin = &ts
	u.UpdatedAt = ts
	require.NoError(t, repo.Update(ctx, u))

	got, err := repo.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)
	assert.True(t, got.LastLogin.Equal(ts))
}

func TestUpdate_MissingRecord(t *testing.T) {
	repo, _ := newRepo(t)

	err := repo.Update(context.Background(), sampleUser("ghost@example.com"))
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestWrite_ReplacesFileInFull(t *testing.T) {
	repo, path := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, sampleUser("one@example.com")))
	require.NoError(t, repo.Write(ctx, &models.UserStoreFile{Users: []models.UserRecord{}}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var store models.UserStoreFile
	require.NoError(t, json.Unmarshal(b, &store))
	assert.Empty(t, store.Users)
}

// The persisted document must never contain a plaintext password field for
// any record; only salt and passwordDigest are stored.
func TestPersistedFile_NoPlaintextPasswordField(t *testing.T) {
	repo, path := newRepo(t)
	require.NoError(t, repo.Insert(context.Background(), sampleUser("ana@example.com")))

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw struct {
		Users []map[string]any `json:"users"`
	}
	require.NoError(t, json.Unmarshal(b, &raw))
	require.Len(t, raw.Users, 1)
	assert.NotContains(t, raw.Users[0], "password")
	assert.Contains(t, raw.Users[0], "passwordDigest")
	assert.Contains(t, raw.Users[0], "salt")
}
