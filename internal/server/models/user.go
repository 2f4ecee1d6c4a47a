package models

// User is a registered account. PasswordHash holds the encoded argon2id hash,
// never the password itself.
type User struct {
	ID           string
	Username     string
	PasswordHash string
}
