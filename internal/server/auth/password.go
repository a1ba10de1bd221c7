package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword applies bcrypt with its default cost. The output embeds the
// salt and cost, so it is self-contained.
func HashPassword(rawPassword string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether rawPassword matches the stored bcrypt hash.
// A malformed stored hash is treated as a mismatch, never a panic.
func VerifyPassword(rawPassword, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(rawPassword)) == nil
}
