package domain

import "time"

// Concept is a fine-grained label for movements, filed under a category.
// The category reference must exist at creation and update time.
type Concept struct {
	ID         string
	OwnerID    string
	Name       Name
	CategoryID string
	CreatedAt  time.Time
}

// NewConcept creates a concept.
func NewConcept(id, ownerID, name, categoryID string, now time.Time) (*Concept, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}

	return &Concept{
		ID:         id,
		OwnerID:    ownerID,
		Name:       n,
		CategoryID: categoryID,
		CreatedAt:  now,
	}, nil
}

// Update replaces the concept's name and category reference.
func (c *Concept) Update(name, categoryID string) error {
	n, err := NewName(name)
	if err != nil {
		return err
	}

	c.Name = n
	c.CategoryID = categoryID

	return nil
}
