// AngelaMos | 2026
// security_test.go

package core_test

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/RaulRamazanov/Shop/internal/core"
)

func TestHashPassword_NeverStoresPlaintext(t *testing.T) {
	hash, err := core.HashPassword("pass1234")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "pass1234" || strings.Contains(hash, "pass1234") {
		t.Fatalf("hash leaks plaintext: %q", hash)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format: %q", hash)
	}

	again, err := core.HashPassword("pass1234")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if again == hash {
		t.Fatalf("two hashes of the same password must differ by salt")
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := core.HashPassword("pass1234")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	ok, err := core.VerifyPassword("pass1234", hash)
	if err != nil || !ok {
		t.Fatalf("correct password rejected: ok=%v err=%v", ok, err)
	}

	ok, err = core.VerifyPassword("pass12345", hash)
	if err != nil || ok {
		t.Fatalf("wrong password accepted: ok=%v err=%v", ok, err)
	}

	if _, err := core.VerifyPassword("pass1234", "not-a-hash"); err == nil {
		t.Fatalf("expected error for malformed hash")
	}
}

func TestVerifyPasswordWithRehash_LegacyBcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("pass1234"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	ok, newHash, err := core.VerifyPasswordWithRehash("pass1234", string(legacy))
	if err != nil || !ok {
		t.Fatalf("legacy hash rejected: ok=%v err=%v", ok, err)
	}
	if !strings.HasPrefix(newHash, "$argon2id$") {
		t.Fatalf("expected argon2id rehash, got %q", newHash)
	}

	ok, newHash, err = core.VerifyPasswordWithRehash("wrong999", string(legacy))
	if err != nil || ok || newHash != "" {
		t.Fatalf("wrong legacy password: ok=%v hash=%q err=%v", ok, newHash, err)
	}
}

func TestVerifyPasswordTimingSafe_NilHash(t *testing.T) {
	ok, newHash, err := core.VerifyPasswordTimingSafe("anything1", nil)
	if ok || newHash != "" || err != nil {
		t.Fatalf("nil hash must fail quietly: ok=%v hash=%q err=%v", ok, newHash, err)
	}
}

func TestVerifyPasswordWithRehash_CurrentArgonUnchanged(t *testing.T) {
	hash, err := core.HashPassword("pass1234")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	ok, newHash, err := core.VerifyPasswordWithRehash("pass1234", hash)
	if err != nil || !ok || newHash != "" {
		t.Fatalf("current hash: ok=%v newHash=%q err=%v", ok, newHash, err)
	}
}

func TestVerifyPassword_MalformedHashes(t *testing.T) {
	tests := []string{
		"",
		"x",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$!!$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$",
	}

	for _, encoded := range tests {
		if _, err := core.VerifyPassword("pass1234", encoded); err == nil {
			t.Fatalf("VerifyPassword accepted %q", encoded)
		}
	}
}
