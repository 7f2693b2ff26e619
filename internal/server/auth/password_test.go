package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewHasher(t *testing.T) {
	h, err := NewHasher("", bcrypt.MinCost)
	require.NoError(t, err)
	assert.IsType(t, &BcryptHasher{}, h)

	h, err = NewHasher(AlgorithmArgon2id, 1)
	require.NoError(t, err)
	assert.IsType(t, &Argon2Hasher{}, h)

	_, err = NewHasher("md5", 10)
	assert.Error(t, err)

	_, err = NewHasher(AlgorithmBcrypt, 2)
	assert.Error(t, err)

	_, err = NewHasher(AlgorithmArgon2id, -1)
	assert.Error(t, err)
}

func TestNewHasher_ZeroCostUsesAlgorithmDefault(t *testing.T) {
	h, err := NewHasher(AlgorithmBcrypt, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultBcryptCost, h.(*BcryptHasher).cost)

	h, err = NewHasher(AlgorithmArgon2id, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(DefaultArgon2Time), h.(*Argon2Hasher).Time)
}

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	ok, err := h.Verify("secret1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_SaltsEachHash(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	ok, err := h.Verify("x", "not-a-bcrypt-hash")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrMalformedHash)
}

func TestArgon2Hasher_RoundTrip(t *testing.T) {
	h := &Argon2Hasher{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=8192,t=1,p=1$"), hash)

	ok, err := h.Verify("secret1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2Hasher_MalformedHash(t *testing.T) {
	h := &Argon2Hasher{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

	for _, bad := range []string{
		"",
		"$2a$10$abcdefghijklmnopqrstuv",
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$garbage$c2FsdA$a2V5",
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$a2V5",
		"$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$",
		"$argon2id$v=19$m=8192,t=1,p=0$c2FsdA$a2V5",
		"$argon2id$v=19$m=8192,t=0,p=1$c2FsdA$a2V5",
	} {
		ok, err := h.Verify("x", bad)
		assert.False(t, ok, bad)
		assert.ErrorIs(t, err, ErrMalformedHash, bad)
	}
}
