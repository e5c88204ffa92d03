package model

import "time"

// User is a station staff account for the admin API. Listeners never log in;
// accounts exist only for staff managing overrides and presenter photos.
type User struct {
	ID             int       `db:"id"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	Name           *string   `db:"name"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
