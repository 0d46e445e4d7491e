package auth

import "golang.org/x/crypto/bcrypt"

// DefaultCost is the bcrypt work factor for newly hashed passwords.
const DefaultCost = 12

// HashPassword hashes a plaintext password with bcrypt at the given cost.
// A cost of 0 falls back to DefaultCost.
func HashPassword(plain string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored bcrypt hash.
// A mismatch is not an error, just false.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
