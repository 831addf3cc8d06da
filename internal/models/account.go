package models

// Account represents a registered local user.
//
// Accounts are created once at registration and never updated or deleted.
// The password is stored and compared as plaintext, matching the behavior of
// the desktop simulator this store backs. This is a known security gap, kept
// deliberately; do not treat the users table as a hardened credential store.
type Account struct {
	Username string `gorm:"primaryKey;size:255" json:"username"`
	Password string `gorm:"not null;size:255" json:"-"`
}

// TableName returns the table name for Account
func (Account) TableName() string {
	return "users"
}
