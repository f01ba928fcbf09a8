package service

import (
	"context"
	"testing"

	"github.com/cuongnguyenngoc/web3mail/internal/client"
	"github.com/cuongnguyenngoc/web3mail/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, backend client.StorageBackend) *ObjectStore {
	t.Helper()

	store, err := NewObjectStore(backend, "test-passphrase", "test-salt")
	require.NoError(t, err)
	return store
}

func TestObjectStore_RoundTrip(t *testing.T) {
	store := newTestStore(t, newMemoryBackend())
	ctx := context.Background()

	plaintext := []byte(`{"subject":"hello","body":"world"}`)

	cid, err := store.Put(ctx, plaintext)
	require.NoError(t, err)
	require.NotEmpty(t, cid)

	got, err := store.Get(ctx, cid)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestObjectStore_MissingKeyMaterial(t *testing.T) {
	_, err := NewObjectStore(newMemoryBackend(), "", "salt")
	assert.ErrorIs(t, err, common.ErrConfiguration)

	_, err = NewObjectStore(newMemoryBackend(), "pass", "")
	assert.ErrorIs(t, err, common.ErrConfiguration)
}

func TestObjectStore_BackendUnavailable(t *testing.T) {
	store := newTestStore(t, unavailableBackend{})

	_, err := store.Put(context.Background(), []byte("payload"))
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
}

func TestObjectStore_NotFound(t *testing.T) {
	store := newTestStore(t, newMemoryBackend())

	_, err := store.Get(context.Background(), "no-such-cid")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestObjectStore_TamperDetected(t *testing.T) {
	backend := newMemoryBackend()
	store := newTestStore(t, backend)
	ctx := context.Background()

	cid, err := store.Put(ctx, []byte("sensitive content"))
	require.NoError(t, err)

	// flip one ciphertext byte behind the store's back
	backend.mu.Lock()
	backend.objects[cid][len(backend.objects[cid])-1] ^= 0xFF
	backend.mu.Unlock()

	_, err = store.Get(ctx, cid)
	assert.ErrorIs(t, err, common.ErrDecryptionFailed)
}

func TestObjectStore_WrongKeyFailsAuthentication(t *testing.T) {
	backend := newMemoryBackend()
	store := newTestStore(t, backend)
	ctx := context.Background()

	cid, err := store.Put(ctx, []byte("secret"))
	require.NoError(t, err)

	other, err := NewObjectStore(backend, "different-passphrase", "test-salt")
	require.NoError(t, err)

	_, err = other.Get(ctx, cid)
	assert.ErrorIs(t, err, common.ErrDecryptionFailed)
}
