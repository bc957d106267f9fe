package models

import "time"

// User is an account document from the users collection.
// PasswordHash never leaves the API; it is bcrypt output, not a password.
type User struct {
	ID           string     `bson:"_id,omitempty" json:"id"`
	Email        string     `bson:"email" json:"email"`
	Name         string     `bson:"name,omitempty" json:"name,omitempty"`
	Phone        string     `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash string     `bson:"passwordHash,omitempty" json:"-"`
	CreatedAt    *time.Time `bson:"createdAt,omitempty" json:"created_at,omitempty"`
}
