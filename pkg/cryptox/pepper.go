package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
)

// Argon2id parameters. Hashes carry their own parameters, so changing these
// only affects new hashes.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

var (
	pepperMu sync.RWMutex
	pepper   string
)

// SetPepper installs the server-wide secret mixed into every password hash.
// An empty value makes the next hash generate a random in-memory pepper, so
// hashes never outlive the process.
func SetPepper(p string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()
	pepper = p
}

func currentPepper() string {
	pepperMu.RLock()
	p := pepper
	pepperMu.RUnlock()
	if p != "" {
		return p
	}

	pepperMu.Lock()
	defer pepperMu.Unlock()
	if pepper == "" {
		buf := make([]byte, keyLength)
		if _, err := rand.Read(buf); err != nil {
			panic("cryptox: failed to generate pepper: " + err.Error())
		}
		pepper = base64.RawURLEncoding.EncodeToString(buf)
	}
	return pepper
}
