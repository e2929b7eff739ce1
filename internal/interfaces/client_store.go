package interfaces

import (
	"context"

	"github.com/sheikh-saqib/bank-client-ledger/internal/models"
)

// ClientStore holds the authoritative collection of clients.
// Returned clients are copies; changes reach the store only through Update.
type ClientStore interface {
	Save(ctx context.Context, client *models.Client) error
	FindByEmail(ctx context.Context, email string) (*models.Client, error)
	FindByID(ctx context.Context, id string) (*models.Client, error)
	Update(ctx context.Context, clients ...*models.Client) error
	Delete(ctx context.Context, client *models.Client) error
	List(ctx context.Context) ([]*models.Client, error)
}
