// Package model defines the records the wellness tracker stores.
//
// These are plain structs with no database or HTTP knowledge. The
// repository layer fills them; handlers convert them to JSON views.
package model

// DefaultAvatarColor is assigned to new accounts until the user picks one.
const DefaultAvatarColor = "blue"

// User represents a registered account.
//
// PasswordHash holds a bcrypt hash, never the plaintext. The `json:"-"` tag
// keeps it out of every API response even if a handler serialises the
// whole struct by mistake.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"` // unique, stored lowercased
	PasswordHash string `json:"-"`
	Bio          string `json:"bio"`
	AvatarColor  string `json:"avatar_color"`
}
