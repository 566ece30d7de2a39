package entity

import (
	"time"
)

// Identity is the account aggregate: credentials plus the public name and avatar.
// Passwords are stored as bcrypt hashes in PasswordHash.
type Identity struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	AvatarURL    string    `json:"avatar" bson:"avatar_url"`
	CreatedAt    time.Time `json:"date" bson:"created_at"`
}

// Owner is the public slice of an Identity embedded in profile reads.
type Owner struct {
	ID        string `json:"_id" bson:"_id"`
	Name      string `json:"name" bson:"name"`
	AvatarURL string `json:"avatar" bson:"avatar_url"`
}

// Summary returns the owner view of the identity.
func (i *Identity) Summary() *Owner {
	return &Owner{ID: i.ID, Name: i.Name, AvatarURL: i.AvatarURL}
}
