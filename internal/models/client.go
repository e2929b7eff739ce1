package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Client represents a bank account holder.
// Email is the logical identifier; an empty Email means the client has none.
type Client struct {
	ID      string          `json:"-"` // store handle, assigned on save
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Balance decimal.Decimal `json:"balance"`
}

// NewClient builds an unsaved client.
func NewClient(name, email string, balance decimal.Decimal) *Client {
	return &Client{
		Name:    name,
		Email:   email,
		Balance: balance,
	}
}

func (c Client) String() string {
	return fmt.Sprintf("Client{name=%s, email=%s, balance=%s}", c.Name, c.Email, c.Balance.String())
}
