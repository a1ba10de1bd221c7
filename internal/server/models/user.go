package models

import "time"

// User is the identity record. HashedPassword is the opaque bcrypt output;
// the raw password is never stored. EmailVerified starts false and is set
// true exactly once by a successful email-verification redemption.
type User struct {
	ID             int64
	Login          string
	Email          string
	HashedPassword string
	EmailVerified  bool
	CreatedAt      time.Time
}
