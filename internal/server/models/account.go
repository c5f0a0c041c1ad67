package models

import "time"

// Account is an authentication identity: the credential record users sign
// in with. Application-level data lives in Profile, linked 1:1 by AuthID.
type Account struct {
	ID           string
	Email        string
	PasswordHash []byte
	Name         string
	CreatedAt    time.Time
}
