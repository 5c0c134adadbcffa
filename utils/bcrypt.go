package utils

import "golang.org/x/crypto/bcrypt"

// Account passwords are stored bcrypt-hashed; the hash never leaves the
// users table and login is the only compare site.

func HashPassword(s string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(s), bcrypt.DefaultCost)
}

func ComparePassword(hashed string, normal string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(normal))
}
