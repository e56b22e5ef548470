package firebase

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/ljupchokanevche/flutterfire-cli/pkg/errors"
)

func TestTokenStoreKeyring(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvUseKeychain, "true")

	store, err := NewTokenStore()
	require.NoError(t, err)

	_, err = store.Load()
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTokenNotFound, errors.GetErrorCode(err))

	require.NoError(t, store.Save("1//ci-token-value"))

	token, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "1//ci-token-value", token)

	require.NoError(t, store.Delete())

	_, err = store.Load()
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTokenNotFound, errors.GetErrorCode(err))
}

func TestTokenStoreDeleteWithoutSave(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvUseKeychain, "true")

	store, err := NewTokenStore()
	require.NoError(t, err)
	assert.NoError(t, store.Delete())
}

func TestTokenStoreEncryptedFile(t *testing.T) {
	t.Setenv(EnvUseKeychain, "false")
	t.Setenv("HOME", t.TempDir())

	store, err := NewTokenStore()
	require.NoError(t, err)

	require.NoError(t, store.Save("1//ci-token-value"))

	// The token never touches disk in the clear
	raw, err := os.ReadFile(store.tokenPath())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "ci-token-value")

	token, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "1//ci-token-value", token)

	// A fresh store picks up the persisted master key
	store2, err := NewTokenStore()
	require.NoError(t, err)
	token, err = store2.Load()
	require.NoError(t, err)
	assert.Equal(t, "1//ci-token-value", token)

	require.NoError(t, store.Delete())
	_, err = store.Load()
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTokenNotFound, errors.GetErrorCode(err))
}

func TestTokenStoreFilePermissions(t *testing.T) {
	t.Setenv(EnvUseKeychain, "false")
	t.Setenv("HOME", t.TempDir())

	store, err := NewTokenStore()
	require.NoError(t, err)
	require.NoError(t, store.Save("secret"))

	info, err := os.Stat(store.tokenPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	info, err = os.Stat(store.credentialsDir())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestTokenStoreCorruptedFile(t *testing.T) {
	t.Setenv(EnvUseKeychain, "false")
	t.Setenv("HOME", t.TempDir())

	store, err := NewTokenStore()
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(store.credentialsDir(), 0700))
	require.NoError(t, os.WriteFile(store.tokenPath(), []byte("not a token !!!"), 0600))

	_, err = store.Load()
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTokenStorage, errors.GetErrorCode(err))
}

func TestResolveToken(t *testing.T) {
	t.Setenv(EnvFirebaseToken, "")

	assert.Equal(t, "explicit-token", ResolveToken("explicit-token", nil))
	assert.Equal(t, "", ResolveToken("", nil))

	t.Setenv(EnvFirebaseToken, "env-token")
	assert.Equal(t, "env-token", ResolveToken("", nil))
	assert.Equal(t, "explicit-token", ResolveToken("explicit-token", nil),
		"an explicit token beats the environment")
}

func TestResolveTokenFromStore(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvUseKeychain, "true")
	t.Setenv(EnvFirebaseToken, "")

	store, err := NewTokenStore()
	require.NoError(t, err)

	assert.Equal(t, "", ResolveToken("", store), "an empty store yields no token")

	require.NoError(t, store.Save("stored-token"))
	assert.Equal(t, "stored-token", ResolveToken("", store))

	t.Setenv(EnvFirebaseToken, "env-token")
	assert.Equal(t, "env-token", ResolveToken("", store),
		"the environment beats the store")
}
