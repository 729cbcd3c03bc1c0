package domain

// User is declared in the schema but no route is wired to it yet.
// Kept at the storage level as a placeholder for account support.
type User struct {
	Id           int64
	Username     string
	PasswordHash string
}
