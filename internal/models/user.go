package models

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type Role struct {
	ID   int64
	Name string
}

// User is an account allowed to log in. Only the hash of the password is kept.
type User struct {
	ID           int64
	RoleID       int64
	Login        string
	PasswordHash string
	Role         string
}

// NewUser builds a user from a plaintext password.
func NewUser(login, password, role string) User {
	return User{
		Login:        login,
		PasswordHash: HashPassword(password),
		Role:         role,
	}
}

func (u *User) SetPassword(password string) {
	u.PasswordHash = HashPassword(password)
}

// HashPassword returns the hex encoded SHA3-512 digest of password.
func HashPassword(password string) string {
	sum := sha3.Sum512([]byte(password))
	return hex.EncodeToString(sum[:])
}
