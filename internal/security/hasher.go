package security

import "golang.org/x/crypto/bcrypt"

// Hasher turns a plaintext credential into an opaque digest. Implementations
// are expected to be slow, salted, one-way transforms.
type Hasher interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hash []byte, plaintext string) error
}

// BcryptHasher hashes credentials with bcrypt at the default cost.
type BcryptHasher struct{}

// NewBcryptHasher creates the production credential hasher.
func NewBcryptHasher() BcryptHasher {
	return BcryptHasher{}
}

// Hash derives a salted digest from the plaintext credential.
func (BcryptHasher) Hash(plaintext string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
}

// Verify reports whether the plaintext matches the stored digest.
func (BcryptHasher) Verify(hash []byte, plaintext string) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(plaintext))
}
