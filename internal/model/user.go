// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// User represents a registered subscriber who receives the daily word email.
//
// WHY ID int64?
// The ID is assigned by SQLite (INTEGER PRIMARY KEY AUTOINCREMENT), which
// hands back a 64-bit rowid. Using int64 matches sql.Result.LastInsertId()
// exactly, so no conversion is needed anywhere.
//
// The UNIQUE constraint on email in the DB ensures one address maps to
// exactly one subscriber — the same address can never be registered twice.
//
// JSON tags are snake_case because that is the wire contract the frontend
// already speaks (joined_date, not joinedDate).
type User struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`       // Globally unique, indexed
	JoinedDate time.Time `json:"joined_date"` // Set by the store at creation time
}
