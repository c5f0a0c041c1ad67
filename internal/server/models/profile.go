package models

import "time"

// Profile is the application-level user record shown on listing and profile
// pages, distinct from the Account it is linked to via AuthID.
type Profile struct {
	ID        string    `json:"id"`
	AuthID    string    `json:"auth_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	Location  string    `json:"location,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
