package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	interfaces "github.com/sheikh-saqib/bank-client-ledger/internal/interfaces" // interface ClientStore
	"github.com/sheikh-saqib/bank-client-ledger/internal/models"
	"github.com/sheikh-saqib/bank-client-ledger/internal/storage"
)

// seq keeps insertion order so FindByEmail returns the first saved match.
const schema = `CREATE TABLE IF NOT EXISTS clients (
	seq     BIGSERIAL PRIMARY KEY,
	id      UUID      NOT NULL UNIQUE,
	name    TEXT      NOT NULL,
	email   TEXT      NOT NULL,
	balance NUMERIC   NOT NULL
)`

type ClientStore struct {
	db *sql.DB
}

// Open connects to dsn and makes sure the clients table exists.
func Open(ctx context.Context, dsn string) (*ClientStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	store := NewClientStore(db)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func NewClientStore(db *sql.DB) *ClientStore {
	return &ClientStore{
		db: db,
	}
}

func (p *ClientStore) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create clients table: %w", err)
	}
	return nil
}

func (p *ClientStore) Close() error {
	return p.db.Close()
}

func (p *ClientStore) Save(ctx context.Context, client *models.Client) error {
	const query = `INSERT INTO clients (id, name, email, balance) VALUES ($1, $2, $3, $4)`

	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	_, err := p.db.ExecContext(ctx, query, client.ID, client.Name, client.Email, client.Balance)
	return err
}

func (p *ClientStore) FindByEmail(ctx context.Context, email string) (*models.Client, error) {
	const query = `SELECT id, name, email, balance FROM clients WHERE email = $1 ORDER BY seq LIMIT 1`

	var c models.Client
	err := p.db.QueryRowContext(ctx, query, email).Scan(&c.ID, &c.Name, &c.Email, &c.Balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (p *ClientStore) FindByID(ctx context.Context, id string) (*models.Client, error) {
	const query = `SELECT id, name, email, balance FROM clients WHERE id = $1`

	if id == "" {
		return nil, storage.ErrNotFound
	}
	var c models.Client
	err := p.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.Balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Update writes the balances of all clients in one database transaction.
func (p *ClientStore) Update(ctx context.Context, clients ...*models.Client) (err error) {
	const query = `UPDATE clients SET name = $2, email = $3, balance = $4 WHERE id = $1`

	dbTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	for _, c := range clients {
		var res sql.Result
		res, err = dbTx.ExecContext(ctx, query, c.ID, c.Name, c.Email, c.Balance)
		if err != nil {
			return err
		}
		var n int64
		n, err = res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			err = storage.ErrNotFound
			return err
		}
	}
	return dbTx.Commit()
}

func (p *ClientStore) Delete(ctx context.Context, client *models.Client) error {
	const query = `DELETE FROM clients WHERE id = $1`

	if client.ID == "" {
		return nil
	}
	_, err := p.db.ExecContext(ctx, query, client.ID)
	return err
}

func (p *ClientStore) List(ctx context.Context) ([]*models.Client, error) {
	const query = `SELECT id, name, email, balance FROM clients ORDER BY seq`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Balance); err != nil {
			return nil, err
		}
		clients = append(clients, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return clients, nil
}

var _ interfaces.ClientStore = (*ClientStore)(nil)
