package models

// User is a row of the users table. Email is stored lowercased and is the
// natural key; ID is assigned by the database on insert.
type User struct {
	ID           int64
	UserName     string
	Email        string
	PasswordHash string
	Salt         string
}
