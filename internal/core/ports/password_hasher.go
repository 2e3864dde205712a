package ports

// PasswordHasher performs one-way salted hashing of credentials.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}
