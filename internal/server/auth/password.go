package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"

	// DefaultBcryptCost is the work factor used for new bcrypt hashes.
	DefaultBcryptCost = 14
	// DefaultArgon2Time is the argon2id iteration count (64 MiB per pass).
	DefaultArgon2Time = 3
)

// DefaultCost returns the work factor NewHasher uses for algorithm when it
// is given a cost of 0.
func DefaultCost(algorithm string) int {
	if algorithm == AlgorithmArgon2id {
		return DefaultArgon2Time
	}
	return DefaultBcryptCost
}

// Hasher is a one-way adaptive password hash.
// Verify reports (false, nil) for a wrong password and an error only when the
// stored hash itself cannot be used.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

var ErrMalformedHash = errors.New("malformed password hash")

// NewHasher picks the implementation by algorithm name. cost is the bcrypt
// cost or the argon2id iteration count; 0 selects DefaultCost(algorithm).
func NewHasher(algorithm string, cost int) (Hasher, error) {
	if cost == 0 {
		cost = DefaultCost(algorithm)
	}
	switch algorithm {
	case "", AlgorithmBcrypt:
		h, err := NewBcryptHasher(cost)
		if err != nil {
			return nil, err
		}
		return h, nil
	case AlgorithmArgon2id:
		if cost < 1 {
			return nil, fmt.Errorf("argon2id time cost must be >= 1 (got %d)", cost)
		}
		return &Argon2Hasher{Time: uint32(cost), Memory: 64 * 1024, Threads: 4, KeyLen: 32, SaltLen: 16}, nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm %q", algorithm)
	}
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost must be between %d and %d (got %d)", bcrypt.MinCost, bcrypt.MaxCost, cost)
	}
	return &BcryptHasher{cost: cost}, nil
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

func (h *BcryptHasher) Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}
}

// Argon2Hasher produces PHC-style strings:
// $argon2id$v=19$m=<KiB>,t=<iterations>,p=<threads>$<salt>$<key>
type Argon2Hasher struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
	SaltLen int
}

func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("argon2id salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.Time, h.Memory, h.Threads, h.KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.Memory, h.Time, h.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (h *Argon2Hasher) Verify(password, hash string) (bool, error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[1] != AlgorithmArgon2id {
		return false, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, ErrMalformedHash
	}

	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false, ErrMalformedHash
	}
	// argon2.IDKey panics on zero rounds or threads.
	if iterations == 0 || threads == 0 {
		return false, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false, ErrMalformedHash
	}

	got := argon2.IDKey([]byte(password), salt, iterations, memory, threads, uint32(len(want)))

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
