package domain

import "time"

// Client is a party that pays incomes to the owner.
type Client struct {
	ID        string
	OwnerID   string
	Name      Name
	CreatedAt time.Time
}

// NewClient creates a client.
func NewClient(id, ownerID, name string, now time.Time) (*Client, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}

	return &Client{ID: id, OwnerID: ownerID, Name: n, CreatedAt: now}, nil
}

// Update renames the client.
func (c *Client) Update(name string) error {
	n, err := NewName(name)
	if err != nil {
		return err
	}

	c.Name = n

	return nil
}

// Payee is a party that receives expense payments from the owner.
type Payee struct {
	ID        string
	OwnerID   string
	Name      Name
	CreatedAt time.Time
}

// NewPayee creates a payee.
func NewPayee(id, ownerID, name string, now time.Time) (*Payee, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}

	return &Payee{ID: id, OwnerID: ownerID, Name: n, CreatedAt: now}, nil
}

// Update renames the payee.
func (p *Payee) Update(name string) error {
	n, err := NewName(name)
	if err != nil {
		return err
	}

	p.Name = n

	return nil
}

// Person is a household member a movement is attributed to.
type Person struct {
	ID        string
	OwnerID   string
	Name      Name
	CreatedAt time.Time
}

// NewPerson creates a person.
func NewPerson(id, ownerID, name string, now time.Time) (*Person, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}

	return &Person{ID: id, OwnerID: ownerID, Name: n, CreatedAt: now}, nil
}

// Update renames the person.
func (p *Person) Update(name string) error {
	n, err := NewName(name)
	if err != nil {
		return err
	}

	p.Name = n

	return nil
}

// PaymentMethod is a way of paying a movement (cash, card, direct debit).
type PaymentMethod struct {
	ID        string
	OwnerID   string
	Name      Name
	CreatedAt time.Time
}

// NewPaymentMethod creates a payment method.
func NewPaymentMethod(id, ownerID, name string, now time.Time) (*PaymentMethod, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}

	return &PaymentMethod{ID: id, OwnerID: ownerID, Name: n, CreatedAt: now}, nil
}

// Update renames the payment method.
func (p *PaymentMethod) Update(name string) error {
	n, err := NewName(name)
	if err != nil {
		return err
	}

	p.Name = n

	return nil
}
