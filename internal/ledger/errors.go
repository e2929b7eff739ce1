package ledger

import (
	"errors"
	"fmt"

	"github.com/sheikh-saqib/bank-client-ledger/internal/storage"
)

var (
	ErrInvalidAmount              = errors.New("amount must be positive")
	ErrSameAccount                = errors.New("fromEmail and toEmail cannot be equal")
	ErrInsufficientFunds          = errors.New("not enough funds")
	ErrInvalidArgument            = errors.New("email cannot be empty")
	ErrCannotDeleteWithFunds      = errors.New("cannot delete client with funds in account")
	ErrCannotDeleteWithEmptyEmail = errors.New("cannot delete client with empty email")

	// ErrIncorrectEmail matches storage.ErrNotFound under errors.Is.
	ErrIncorrectEmail = fmt.Errorf("cannot delete client with incorrect email: %w", storage.ErrNotFound)
)
