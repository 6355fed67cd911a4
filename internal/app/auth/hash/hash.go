package hash

import (
	customErrors "github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/errors"
	"github.com/alexedwards/argon2id"
)

var argonParams = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

// Hasher performs one-way password hashing with a process-wide pepper
// appended to every plaintext before hashing.
type Hasher struct {
	pepper string
	// dummy is compared against when the account does not exist, so the
	// unknown-account path costs the same as a real verification.
	dummy string
}

func New(pepper string) (*Hasher, error) {
	dummy, err := argon2id.CreateHash("contacts-service-dummy"+pepper, argonParams)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "create dummy hash")
	}
	return &Hasher{pepper: pepper, dummy: dummy}, nil
}

func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := argon2id.CreateHash(plaintext+h.pepper, argonParams)
	if err != nil {
		return "", customErrors.WrapInternal(err, "create hash")
	}
	return digest, nil
}

// Verify reports whether plaintext matches digest. A malformed digest is
// treated as a mismatch, never an error.
func (h *Hasher) Verify(plaintext, digest string) bool {
	ok, err := argon2id.ComparePasswordAndHash(plaintext+h.pepper, digest)
	if err != nil {
		return false
	}
	return ok
}

// DummyVerify burns one argon2id comparison without revealing anything.
func (h *Hasher) DummyVerify(plaintext string) {
	_, _ = argon2id.ComparePasswordAndHash(plaintext+h.pepper, h.dummy)
}
