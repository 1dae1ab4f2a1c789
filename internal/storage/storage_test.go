package storage

import (
	"context"
	"path/filepath"
	"testing"

	"HRPolicyGateway/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoadSeed_Default(t *testing.T) {
	seed, err := LoadSeed("")
	require.NoError(t, err)
	require.Len(t, seed.Profiles, 4)
	assert.Len(t, seed.Credentials, 4)

	var carol models.Profile
	for _, p := range seed.Profiles {
		if p.User == "carol" {
			carol = p
		}
	}
	require.NotNil(t, carol.Years)
	assert.Equal(t, 2.0, *carol.Years)
}

func TestLoadProfileStore(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	seed, err := LoadSeed("")
	require.NoError(t, err)

	store, err := LoadProfileStore(ctx, db, seed)
	require.NoError(t, err)
	assert.Equal(t, 4, store.Len())

	dave, ok := store.Lookup("DAVE")
	require.True(t, ok)
	assert.Nil(t, dave.Manager)
	v, ok := dave.Value(models.FieldSalary)
	require.True(t, ok)
	assert.Equal(t, int64(220000), v)

	_, ok = store.Lookup("mallory")
	assert.False(t, ok)
}

func TestApply_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	seed, err := LoadSeed("")
	require.NoError(t, err)

	require.NoError(t, db.Apply(ctx, seed))
	require.NoError(t, db.Apply(ctx, seed))

	profiles, err := db.LoadProfiles(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, 4)
}

func TestProfileStore_LookupReturnsCopy(t *testing.T) {
	years := 1.0
	store := NewProfileStore([]models.Profile{{User: "Bob", Years: &years}})

	p, ok := store.Lookup("bob")
	require.True(t, ok)
	*p.Years = 99

	again, _ := store.Lookup("bob")
	assert.Equal(t, 1.0, *again.Years)
}

func TestCredentials(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, db.CreateCredential(ctx, "Alice", "s3cret"))
	require.ErrorIs(t, db.CreateCredential(ctx, "alice", "other"), ErrUsernameExists)

	require.NoError(t, db.VerifyPassword(ctx, "alice", "s3cret"))
	require.ErrorIs(t, db.VerifyPassword(ctx, "alice", "wrong"), ErrBadCredentials)
	require.ErrorIs(t, db.VerifyPassword(ctx, "nobody", "s3cret"), ErrBadCredentials)

	_, err := db.GetCredential(ctx, "nobody")
	require.ErrorIs(t, err, ErrNotFound)
}
