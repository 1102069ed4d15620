package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrSealedMalformed is returned by Open for input Seal did not produce.
var ErrSealedMalformed = errors.New("sealed value is malformed")

var (
	masterKeyMu sync.RWMutex
	masterKey   []byte
)

// SetMasterKey installs the material secrets are sealed with; it is hashed
// to an AES-256 key. An empty value makes the next Seal generate a random
// in-memory key.
func SetMasterKey(material string) {
	masterKeyMu.Lock()
	defer masterKeyMu.Unlock()

	if material == "" {
		masterKey = nil
		return
	}
	sum := sha256.Sum256([]byte(material))
	masterKey = sum[:]
}

func currentMasterKey() ([]byte, error) {
	masterKeyMu.RLock()
	key := masterKey
	masterKeyMu.RUnlock()
	if key != nil {
		return key, nil
	}

	masterKeyMu.Lock()
	defer masterKeyMu.Unlock()
	if masterKey == nil {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("failed to generate master key: %w", err)
		}
		masterKey = buf
	}
	return masterKey, nil
}

func newGCM() (cipher.AEAD, error) {
	key, err := currentMasterKey()
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// Seal encrypts plaintext with AES-256-GCM under the master key. The result
// is base64url of nonce || ciphertext || tag, so it fits a text column.
func Seal(plaintext string) (string, error) {
	gcm, err := newGCM()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(gcm.Seal(nonce, nonce, []byte(plaintext), nil)), nil
}

// Open reverses Seal.
func Open(sealed string) (string, error) {
	data, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", ErrSealedMalformed
	}

	gcm, err := newGCM()
	if err != nil {
		return "", err
	}

	if len(data) < gcm.NonceSize() {
		return "", ErrSealedMalformed
	}
	nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decryption failed: %w", err)
	}
	return string(plaintext), nil
}
