package models

import "time"

// User mirrors the users table from the wider HR schema. No notice operation
// reads or writes it; it is migrated for schema parity with the rest of the
// suite.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"type:text" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
