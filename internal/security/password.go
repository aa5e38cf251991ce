package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var ErrInvalidHash = errors.New("invalid password hash encoding")

// Argon2Params tunes the cost of the one-way hash. Memory is in KiB.
type Argon2Params struct {
	Iterations uint32
	Memory     uint32
	Threads    uint8
	KeyLen     uint32
	SaltLen    uint32
}

var defaultParams = Argon2Params{
	Iterations: 3,
	Memory:     64 * 1024,
	Threads:    2,
	KeyLen:     32,
	SaltLen:    16,
}

func HashPassword(password string) ([]byte, error) {
	return HashPasswordWithParams(password, defaultParams)
}

// HashPasswordWithParams derives an argon2id hash with a fresh random salt
// and encodes it together with its parameters, so Verify never depends on
// process-wide cost settings.
func HashPasswordWithParams(password string, params Argon2Params) ([]byte, error) {
	salt := make([]byte, params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, params.Iterations, params.Memory, params.Threads, params.KeyLen)

	encoded := fmt.Sprintf("$argon2id$v=19$t=%d,m=%d,p=%d$%s$%s",
		params.Iterations, params.Memory, params.Threads,
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(key))

	return []byte(encoded), nil
}

// VerifyPassword reports whether password matches encodedHash. The comparison
// of the derived keys is constant-time.
func VerifyPassword(password string, encodedHash []byte) (bool, error) {
	parts := strings.Split(string(encodedHash), "$")
	if len(parts) != 6 || parts[1] != "argon2id" || parts[2] != "v=19" {
		return false, ErrInvalidHash
	}

	var (
		iterations uint32
		memory     uint32
		threads    uint8
	)
	if _, err := fmt.Sscanf(parts[3], "t=%d,m=%d,p=%d", &iterations, &memory, &threads); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}

	salt, err := base64.StdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("%w: decode salt: %v", ErrInvalidHash, err)
	}
	key, err := base64.StdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("%w: decode key: %v", ErrInvalidHash, err)
	}

	computed := argon2.IDKey([]byte(password), salt, iterations, memory, threads, uint32(len(key)))

	return subtle.ConstantTimeCompare(key, computed) == 1, nil
}
