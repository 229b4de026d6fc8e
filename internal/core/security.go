// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Current argon2id cost. Stored hashes carry their own parameters, so
// raising these only affects new hashes and rehash-on-login.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLength   = 16
)

var b64 = base64.RawStdEncoding

// argonHash is a decoded "$argon2id$v=19$m=..,t=..,p=..$salt$key" string.
type argonHash struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

func (h argonHash) String() string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.memory, h.time, h.threads,
		b64.EncodeToString(h.salt), b64.EncodeToString(h.key))
}

func (h argonHash) derive(password string) []byte {
	//nolint:gosec // G115: key length is at most a few dozen bytes
	return argon2.IDKey([]byte(password), h.salt, h.time, h.memory, h.threads, uint32(len(h.key)))
}

func (h argonHash) current() bool {
	return h.memory == argonMemory &&
		h.time == argonTime &&
		h.threads == argonThreads &&
		len(h.key) == argonKeyLen
}

func parseArgonHash(encoded string) (argonHash, error) {
	var h argonHash

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return h, fmt.Errorf("parse password hash: invalid format")
	}
	if parts[1] != "argon2id" {
		return h, fmt.Errorf("parse password hash: unsupported algorithm %q", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return h, fmt.Errorf("parse password hash: unsupported version %q", parts[2])
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &h.memory, &h.time, &h.threads); err != nil {
		return h, fmt.Errorf("parse password hash: params: %w", err)
	}

	var err error
	if h.salt, err = b64.DecodeString(parts[4]); err != nil {
		return h, fmt.Errorf("parse password hash: salt: %w", err)
	}
	if h.key, err = b64.DecodeString(parts[5]); err != nil {
		return h, fmt.Errorf("parse password hash: key: %w", err)
	}
	if len(h.key) == 0 {
		return h, fmt.Errorf("parse password hash: empty key")
	}

	return h, nil
}

// HashPassword returns an argon2id hash with a fresh random salt.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	h := argonHash{
		memory:  argonMemory,
		time:    argonTime,
		threads: argonThreads,
		salt:    salt,
	}
	h.key = argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return h.String(), nil
}

// bcrypt hashes come from accounts created before the switch to argon2id.
func isBcryptHash(encoded string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(encoded, prefix) {
			return true
		}
	}
	return false
}

// VerifyPassword compares in constant time. A malformed hash is an error;
// a wrong password is (false, nil).
func VerifyPassword(password, encoded string) (bool, error) {
	ok, _, err := verify(password, encoded)
	return ok, err
}

// verify also reports whether the stored hash is below the current cost.
func verify(password, encoded string) (ok, stale bool, err error) {
	if isBcryptHash(encoded) {
		err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
		switch {
		case err == nil:
			return true, true, nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, false, nil
		default:
			return false, false, fmt.Errorf("verify bcrypt hash: %w", err)
		}
	}

	h, err := parseArgonHash(encoded)
	if err != nil {
		return false, false, err
	}

	if subtle.ConstantTimeCompare(h.key, h.derive(password)) != 1 {
		return false, false, nil
	}

	return true, !h.current(), nil
}

// VerifyPasswordWithRehash returns a replacement hash when the password
// matched a bcrypt or outdated argon2id hash. Failing to produce the
// replacement does not fail the login.
func VerifyPasswordWithRehash(password, encoded string) (bool, string, error) {
	ok, stale, err := verify(password, encoded)
	if err != nil || !ok || !stale {
		return ok, "", err
	}

	upgraded, err := HashPassword(password)
	if err != nil {
		return true, "", nil //nolint:nilerr // verified; upgrade retried next login
	}

	return true, upgraded, nil
}

var dummyHash = sync.OnceValue(func() string {
	h, err := HashPassword("unused-account-placeholder-1")
	if err != nil {
		panic(fmt.Sprintf("security: dummy hash: %v", err))
	}
	return h
})

// VerifyPasswordTimingSafe hashes once even when the account does not exist
// (nil or empty hash), so a lookup miss costs the same as a wrong password.
func VerifyPasswordTimingSafe(password string, encoded *string) (bool, string, error) {
	if encoded == nil || *encoded == "" {
		_, _, _ = verify(password, dummyHash())
		return false, "", nil
	}

	return VerifyPasswordWithRehash(password, *encoded)
}
