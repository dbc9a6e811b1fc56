// Package credentials hashes and verifies portal passwords.
package credentials

import "golang.org/x/crypto/bcrypt"

// Hash returns the salted bcrypt hash of a password. Two calls with the same
// input produce different hashes, but both verify against the original.
func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches the stored credential. A malformed
// credential verifies as false rather than returning an error.
func Verify(password, credential string) bool {
	return bcrypt.CompareHashAndPassword([]byte(credential), []byte(password)) == nil
}
