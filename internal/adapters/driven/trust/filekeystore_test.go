package trust

import (
	"crypto/ed25519"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bricsin4u/AIO-research/internal/core/domain"
)

func generateKeyB64(t *testing.T) (ed25519.PublicKey, string) {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return pub, base64.StdEncoding.EncodeToString(pub)
}

func openTestStore(t *testing.T, dir string) *FileKeyStore {
	t.Helper()
	store, err := NewFileKeyStore(dir)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestFileKeyStore_LoadsExistingKeys(t *testing.T) {
	dir := t.TempDir()
	pub, b64 := generateKeyB64(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "acme.pub"), []byte(b64), 0600))

	store := openTestStore(t, dir)

	key, err := store.PublicKey("acme")
	require.NoError(t, err)
	assert.Equal(t, pub, key)
}

func TestFileKeyStore_UnknownKey(t *testing.T) {
	store := openTestStore(t, t.TempDir())

	_, err := store.PublicKey("nobody")

	assert.ErrorIs(t, err, domain.ErrUnknownKey)
}

func TestFileKeyStore_Add(t *testing.T) {
	dir := t.TempDir()
	store := openTestStore(t, dir)
	pub, b64 := generateKeyB64(t)

	require.NoError(t, store.Add("publisher-1", b64))

	key, err := store.PublicKey("publisher-1")
	require.NoError(t, err)
	assert.Equal(t, pub, key)

	// The key file persists for future processes.
	data, err := os.ReadFile(filepath.Join(dir, "publisher-1.pub"))
	require.NoError(t, err)
	assert.Equal(t, b64, string(data))
}

func TestFileKeyStore_Add_Invalid(t *testing.T) {
	store := openTestStore(t, t.TempDir())
	_, b64 := generateKeyB64(t)

	tests := []struct {
		name  string
		keyID string
		value string
	}{
		{"bad base64", "x", "%%%"},
		{"wrong length", "x", base64.StdEncoding.EncodeToString([]byte("short"))},
		{"empty id", "", b64},
		{"id with slash", "a/b", b64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, store.Add(tt.keyID, tt.value), domain.ErrInvalidInput)
		})
	}
}

func TestFileKeyStore_List_Sorted(t *testing.T) {
	store := openTestStore(t, t.TempDir())
	_, b64a := generateKeyB64(t)
	_, b64b := generateKeyB64(t)

	require.NoError(t, store.Add("zeta", b64a))
	require.NoError(t, store.Add("alpha", b64b))

	assert.Equal(t, []string{"alpha", "zeta"}, store.List())
}

func TestFileKeyStore_SkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	pub, b64 := generateKeyB64(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.pub"), []byte(b64), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.pub"), []byte("not a key"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte(b64), 0600))

	store := openTestStore(t, dir)

	key, err := store.PublicKey("good")
	require.NoError(t, err)
	assert.Equal(t, pub, key)
	assert.Equal(t, []string{"good"}, store.List())
}

func TestFileKeyStore_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	store := openTestStore(t, dir)
	pub, b64 := generateKeyB64(t)

	_, err := store.PublicKey("late")
	require.Error(t, err)

	// Drop a key file behind the store's back; the watcher picks it up.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "late.pub"), []byte(b64), 0600))

	require.Eventually(t, func() bool {
		key, err := store.PublicKey("late")
		return err == nil && string(key) == string(pub)
	}, 2*time.Second, 20*time.Millisecond)
}
