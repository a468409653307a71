package domain

import "time"

// Category groups concepts under a user-defined label. The name is unique
// per owner; uniqueness is enforced by an existence probe before writes,
// not by a database constraint.
type Category struct {
	ID          string
	OwnerID     string
	Name        Name
	Description Description
	CreatedAt   time.Time
}

// NewCategory creates a category.
func NewCategory(id, ownerID, name, description string, now time.Time) (*Category, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}

	d, err := NewDescription(description)
	if err != nil {
		return nil, err
	}

	return &Category{
		ID:          id,
		OwnerID:     ownerID,
		Name:        n,
		Description: d,
		CreatedAt:   now,
	}, nil
}

// Update replaces the category's name and description.
func (c *Category) Update(name, description string) error {
	n, err := NewName(name)
	if err != nil {
		return err
	}

	d, err := NewDescription(description)
	if err != nil {
		return err
	}

	c.Name = n
	c.Description = d

	return nil
}
