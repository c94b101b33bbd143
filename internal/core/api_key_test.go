package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyService_Create_ReturnsRawKeyOnce(t *testing.T) {
	db := &mockDB{}
	svc := NewAPIKeyService(db)
	ctx := context.Background()

	var storedHash string
	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Run(func(args mock.Arguments) {
			storedHash = args.Get(2).([]any)[2].(string)
		}).
		Return(pgconn.CommandTag{}, nil)

	key, rawKey, err := svc.Create(ctx, "ops-dashboard")
	require.NoError(t, err)

	assert.Equal(t, "ops-dashboard", key.Name)
	assert.Regexp(t, `^trk_[0-9a-f]{64}$`, rawKey)
	assert.Equal(t, rawKey[:12], key.KeyPrefix)
	assert.Empty(t, key.KeyHash, "hash never leaves the service")

	// The stored hash is sha256 of the raw key, not the raw key itself.
	sum := sha256.Sum256([]byte(rawKey))
	assert.Equal(t, hex.EncodeToString(sum[:]), storedHash)
	db.AssertExpectations(t)
}

func TestAPIKeyService_Revoke_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewAPIKeyService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("UPDATE 1"), nil)

	require.NoError(t, svc.Revoke(ctx, "key-1"))
}

func TestAPIKeyService_Revoke_AlreadyRevokedOrMissing(t *testing.T) {
	db := &mockDB{}
	svc := NewAPIKeyService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("UPDATE 0"), nil)

	err := svc.Revoke(ctx, "key-1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAPIKeyService_List(t *testing.T) {
	db := &mockDB{}
	svc := NewAPIKeyService(db)
	ctx := context.Background()

	rows := newMockRows(func(dest ...any) error {
		*(dest[0].(*string)) = "key-1"
		*(dest[1].(*string)) = "ops-dashboard"
		*(dest[2].(*string)) = "trk_0123abcd"
		return nil
	})
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rows, nil)

	keys, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, "ops-dashboard", keys[0].Name)
}
