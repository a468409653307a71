package domain

import "time"

// User owns every other aggregate. Authentication lives outside this core.
type User struct {
	ID        string
	Name      Name
	Email     Email
	CreatedAt time.Time
}

// NewUser creates a user.
func NewUser(id, name, email string, now time.Time) (*User, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}

	e, err := NewEmail(email)
	if err != nil {
		return nil, err
	}

	return &User{ID: id, Name: n, Email: e, CreatedAt: now}, nil
}

// Update replaces the user's name and email.
func (u *User) Update(name, email string) error {
	n, err := NewName(name)
	if err != nil {
		return err
	}

	e, err := NewEmail(email)
	if err != nil {
		return err
	}

	u.Name = n
	u.Email = e

	return nil
}
