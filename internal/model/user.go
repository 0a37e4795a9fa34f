package model

import "time"

// StaffUser is a restaurant staff account used to authenticate against
// the API.  Passwords are stored as bcrypt hashes and never leave the
// repository layer.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – login email, unique.
//  FullName     – display name.
//  PasswordHash – bcrypt hash of the password.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type StaffUser struct {
	ID           uint64    // staff_users.id
	Email        string    // staff_users.email
	FullName     string    // staff_users.full_name
	PasswordHash string    // staff_users.password_hash
	CreatedAt    time.Time // staff_users.created_at
	UpdatedAt    time.Time // staff_users.updated_at
}
