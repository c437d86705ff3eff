// Package pwhash produces and checks crypt(3) password hashes for shadow
// files.
package pwhash

import (
	"errors"
	"strings"

	"github.com/GehirnInc/crypt"
	"github.com/GehirnInc/crypt/md5_crypt"
	"github.com/GehirnInc/crypt/sha256_crypt"
	"github.com/GehirnInc/crypt/sha512_crypt"
)

var (
	ErrMismatch        = errors.New("password does not match hash")
	ErrUnsupportedHash = errors.New("unsupported password hash")
)

// Hash returns a sha512-crypt ($6$) hash of password with a random salt.
func Hash(password string) (string, error) {
	return sha512_crypt.New().Generate([]byte(password), nil)
}

// Verify checks password against a $1$, $5$ or $6$ hash. A leading lock
// prefix ("!") is ignored.
func Verify(hash, password string) error {
	hash = strings.TrimLeft(hash, "!")
	var c crypt.Crypter
	switch {
	case strings.HasPrefix(hash, sha512_crypt.MagicPrefix):
		c = sha512_crypt.New()
	case strings.HasPrefix(hash, sha256_crypt.MagicPrefix):
		c = sha256_crypt.New()
	case strings.HasPrefix(hash, md5_crypt.MagicPrefix):
		c = md5_crypt.New()
	default:
		// yescrypt ($y$), bcrypt ($2*$) and friends.
		return ErrUnsupportedHash
	}
	if err := c.Verify(hash, []byte(password)); err != nil {
		return ErrMismatch
	}
	return nil
}
