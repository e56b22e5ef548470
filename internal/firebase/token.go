package firebase

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/zalando/go-keyring"
	"golang.org/x/crypto/pbkdf2"

	"github.com/ljupchokanevche/flutterfire-cli/internal/common"
	"github.com/ljupchokanevche/flutterfire-cli/pkg/errors"
)

const (
	// keyringService identifies our entries in the system keyring.
	keyringService = "flutterfire-cli"
	// keyringTokenName is the single entry the store keeps.
	keyringTokenName = "ci-token"

	// EnvUseKeychain forces the system keyring on ("true") or off
	// ("false"), overriding platform detection.
	EnvUseKeychain = "FLUTTERFIRE_USE_KEYCHAIN"

	// Salt for key derivation
	saltSize = 32
	// Number of iterations for PBKDF2
	pbkdf2Iterations = 100000
	// Key size for AES-256
	keySize = 32
)

// TokenStore persists the Firebase CI token between runs. The system
// keyring is used where available; otherwise the token is encrypted
// with a machine-derived key and kept under the user's home directory.
type TokenStore struct {
	useKeyring bool
	masterKey  []byte
}

// NewTokenStore creates a token store.
func NewTokenStore() (*TokenStore, error) {
	ts := &TokenStore{
		useKeyring: isKeyringAvailable(),
	}

	if !ts.useKeyring {
		key, err := ts.getMasterKey()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeTokenStorage, "failed to initialize master key")
		}
		ts.masterKey = key
	}

	return ts, nil
}

// Save stores the token, replacing any previously saved one.
func (ts *TokenStore) Save(token string) error {
	if ts.useKeyring {
		if err := keyring.Set(keyringService, keyringTokenName, token); err != nil {
			return errors.Wrap(err, errors.ErrCodeTokenStorage, "failed to store token in keyring")
		}
		return nil
	}
	return ts.saveEncrypted(token)
}

// Load retrieves the saved token.
func (ts *TokenStore) Load() (string, error) {
	if ts.useKeyring {
		token, err := keyring.Get(keyringService, keyringTokenName)
		if err != nil {
			if err == keyring.ErrNotFound {
				return "", tokenNotFoundError()
			}
			return "", errors.Wrap(err, errors.ErrCodeTokenStorage, "failed to read token from keyring")
		}
		return token, nil
	}
	return ts.loadEncrypted()
}

// Delete removes the saved token. Deleting a token that was never
// saved is not an error.
func (ts *TokenStore) Delete() error {
	if ts.useKeyring {
		if err := keyring.Delete(keyringService, keyringTokenName); err != nil && err != keyring.ErrNotFound {
			return errors.Wrap(err, errors.ErrCodeTokenStorage, "failed to delete token from keyring")
		}
		return nil
	}

	if err := os.Remove(ts.tokenPath()); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, errors.ErrCodeTokenStorage, "failed to delete token file")
	}
	return nil
}

// Encrypted file storage methods

func (ts *TokenStore) saveEncrypted(token string) error {
	encrypted, err := ts.encrypt(token)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeTokenStorage, "failed to encrypt token")
	}

	if err := os.MkdirAll(ts.credentialsDir(), common.DirPermissionSecure); err != nil {
		return errors.Wrap(err, errors.ErrCodeTokenStorage, "failed to create credentials directory")
	}

	path, err := common.ValidatePath(ts.tokenPath(), ts.credentialsDir())
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeTokenStorage, "invalid token file path")
	}

	if err := os.WriteFile(path, []byte(encrypted), common.FilePermissionSecure); err != nil { // #nosec G304 - path is validated
		return errors.Wrap(err, errors.ErrCodeTokenStorage, "failed to write token file")
	}
	return nil
}

func (ts *TokenStore) loadEncrypted() (string, error) {
	path, err := common.ValidatePath(ts.tokenPath(), ts.credentialsDir())
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeTokenStorage, "invalid token file path")
	}

	data, err := os.ReadFile(path) // #nosec G304 - path is validated
	if err != nil {
		if os.IsNotExist(err) {
			return "", tokenNotFoundError()
		}
		return "", errors.Wrap(err, errors.ErrCodeTokenStorage, "failed to read token file")
	}

	token, err := ts.decrypt(string(data))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeTokenStorage, "failed to decrypt token")
	}
	return token, nil
}

// Encryption methods

func (ts *TokenStore) encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(ts.masterKey)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (ts *TokenStore) decrypt(ciphertext string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(ts.masterKey)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}

	nonce, encryptedData := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, encryptedData, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// Helper methods

func (ts *TokenStore) getMasterKey() ([]byte, error) {
	keyPath, err := common.ValidatePath(ts.masterKeyPath(), ts.credentialsDir())
	if err != nil {
		return nil, fmt.Errorf("invalid master key path: %w", err)
	}

	data, err := os.ReadFile(keyPath) // #nosec G304 - path is validated
	if err == nil {
		// Extract the key part (skip the salt)
		if len(data) != saltSize+keySize {
			return nil, fmt.Errorf("invalid master key file size")
		}
		return data[saltSize:], nil
	}

	// Generate a new master key
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}

	// Derive the key from machine-specific data
	key := pbkdf2.Key([]byte(machineID()), salt, pbkdf2Iterations, keySize, sha256.New)

	// Store salt and key together
	keyData := append(salt, key...)
	if err := os.MkdirAll(ts.credentialsDir(), common.DirPermissionSecure); err != nil {
		return nil, err
	}

	if err := os.WriteFile(keyPath, keyData, common.FilePermissionSecure); err != nil { // #nosec G304 - path is validated
		return nil, err
	}

	return key, nil
}

func (ts *TokenStore) credentialsDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".flutterfire", "credentials")
}

func (ts *TokenStore) tokenPath() string {
	return filepath.Join(ts.credentialsDir(), keyringTokenName+".cred")
}

func (ts *TokenStore) masterKeyPath() string {
	return filepath.Join(ts.credentialsDir(), ".master")
}

func tokenNotFoundError() *errors.AppError {
	return errors.New(errors.ErrCodeTokenNotFound, "no saved Firebase token").
		WithSuggestions(
			"Run 'firebase login' to authenticate interactively",
			"Pass a CI token with --token or the FIREBASE_TOKEN environment variable",
		)
}

// Platform-specific helpers

func isKeyringAvailable() bool {
	// Explicit override, used in CI and tests
	switch os.Getenv(EnvUseKeychain) {
	case "true":
		return true
	case "false":
		return false
	}

	switch runtime.GOOS {
	case "darwin", "windows":
		return true
	case "linux":
		// Check if a supported keyring backend is available
		if os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != "" {
			return true
		}
	}
	return false
}

func machineID() string {
	hostname, _ := os.Hostname()
	user := os.Getenv("USER")
	if user == "" {
		user = os.Getenv("USERNAME")
	}

	data := fmt.Sprintf("%s-%s-%s-%s", hostname, user, runtime.GOOS, runtime.GOARCH)
	hash := sha256.Sum256([]byte(data))
	return base64.StdEncoding.EncodeToString(hash[:])
}
