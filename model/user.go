package model

// User is an account record. The display name is the login identifier
// and must be unique. Accounts are never updated or deleted.
type User struct {
	ID           string `gorm:"primaryKey" json:"userId"`
	Name         string `gorm:"unique;not null" json:"name"`
	PasswordHash string `gorm:"not null" json:"-"`
	CreatedAt    int64  `gorm:"not null" json:"createdAt"`
}
