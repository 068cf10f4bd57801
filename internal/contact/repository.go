package contact

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrExists indicates a contact with the same phone is already saved.
var ErrExists = errors.New("contact exists")

// Repository persists the contact book.
type Repository interface {
	Create(ctx context.Context, contact Contact) error
	FindByPhone(ctx context.Context, phone string) (Contact, error)
	List(ctx context.Context) ([]Contact, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed contact repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the contacts table when it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `CREATE TABLE IF NOT EXISTS contacts (
        id UUID PRIMARY KEY,
        name TEXT NOT NULL,
        phone TEXT NOT NULL UNIQUE,
        created_at TIMESTAMPTZ NOT NULL
    )`)
	return err
}

// Create inserts a new contact.
func (r *PostgresRepository) Create(ctx context.Context, contact Contact) error {
	contactID, err := uuid.Parse(contact.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO contacts (id, name, phone, created_at)
        VALUES ($1, $2, $3, $4)`, contactID, contact.Name, contact.Phone, contact.CreatedAt.UTC())
	return err
}

// FindByPhone fetches a contact by phone number.
func (r *PostgresRepository) FindByPhone(ctx context.Context, phone string) (Contact, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, phone, created_at FROM contacts WHERE phone = $1`, phone)
	var (
		id        uuid.UUID
		createdAt time.Time
		contact   Contact
	)
	if err := row.Scan(&id, &contact.Name, &contact.Phone, &createdAt); err != nil {
		return Contact{}, err
	}
	contact.ID = id.String()
	contact.CreatedAt = createdAt.UTC()
	return contact, nil
}

// List returns the contact book, most recently added first.
func (r *PostgresRepository) List(ctx context.Context) ([]Contact, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, phone, created_at FROM contacts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []Contact{}
	for rows.Next() {
		var (
			id        uuid.UUID
			createdAt time.Time
			contact   Contact
		)
		if err := rows.Scan(&id, &contact.Name, &contact.Phone, &createdAt); err != nil {
			return nil, err
		}
		contact.ID = id.String()
		contact.CreatedAt = createdAt.UTC()
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}
