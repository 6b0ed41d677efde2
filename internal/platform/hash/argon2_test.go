package hash_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/ferdiebergado/tokenkit/internal/config"
	"github.com/ferdiebergado/tokenkit/internal/platform/hash"
)

var testCfg = &config.Argon2{
	Memory:     8 * 1024,
	Iterations: 1,
	Threads:    1,
	SaltLength: 16,
	KeyLength:  32,
}

func TestArgon2Hasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	hasher := hash.NewArgon2Hasher(testCfg, "pepper")

	hashed, err := hasher.Hash("correct horse")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(hashed, "$argon2id$v=19$") {
		t.Errorf("hashed = %q, want argon2id PHC prefix", hashed)
	}

	other, err := hasher.Hash("correct horse")
	if err != nil {
		t.Fatal(err)
	}
	if other == hashed {
		t.Error("two hashes of the same password are equal, want distinct salts")
	}

	tests := []struct {
		name   string
		hasher *hash.Argon2Hasher
		plain  string
		want   bool
	}{
		{"same password", hasher, "correct horse", true},
		{"wrong password", hasher, "battery staple", false},
		{"different pepper", hash.NewArgon2Hasher(testCfg, "other"), "correct horse", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ok, err := tt.hasher.Verify(tt.plain, hashed)
			if err != nil {
				t.Fatal(err)
			}
			if ok != tt.want {
				t.Errorf("hasher.Verify(%q) = %v, want: %v", tt.plain, ok, tt.want)
			}
		})
	}
}

func TestArgon2Hasher_VerifyInvalidHash(t *testing.T) {
	t.Parallel()

	hasher := hash.NewArgon2Hasher(testCfg, "")

	for _, hashed := range []string{"", "plain", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA", "$argon2id$v=19$garbage$c2FsdA$aGFzaA"} {
		if _, err := hasher.Verify("x", hashed); !errors.Is(err, hash.ErrInvalidHash) {
			t.Errorf("hasher.Verify(%q) = %v, want: %v", hashed, err, hash.ErrInvalidHash)
		}
	}
}
