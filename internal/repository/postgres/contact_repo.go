package postgres

import (
	"context"
	"errors"

	"contacts-api/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const contactSchema = `CREATE TABLE IF NOT EXISTS contacts (
	seq            BIGSERIAL,
	id             CHAR(24) PRIMARY KEY,
	first_name     TEXT NOT NULL,
	last_name      TEXT NOT NULL,
	email          TEXT NOT NULL,
	favorite_color TEXT NOT NULL,
	birthday       TEXT NOT NULL
)`

type contactRepo struct {
	db *pgxpool.Pool
}

// NewContactRepository stores contacts in a relational table. Identifiers are
// generated in the ObjectID hex format so clients see the same id shape as
// with the document store.
func NewContactRepository(db *pgxpool.Pool) domain.ContactRepository {
	return &contactRepo{db: db}
}

// EnsureContactSchema creates the contacts table when it does not exist yet.
func EnsureContactSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, contactSchema); err != nil {
		return domain.StorageError(err)
	}
	return nil
}

func (r *contactRepo) List(ctx context.Context) ([]domain.Contact, error) {
	query := `SELECT id, first_name, last_name, email, favorite_color, birthday FROM contacts ORDER BY seq`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	defer rows.Close()

	contacts := []domain.Contact{}
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.FavoriteColor, &c.Birthday); err != nil {
			return nil, domain.StorageError(err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageError(err)
	}
	return contacts, nil
}

func (r *contactRepo) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	query := `SELECT id, first_name, last_name, email, favorite_color, birthday FROM contacts WHERE id = $1`

	var c domain.Contact
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.FavoriteColor, &c.Birthday)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrContactNotFound
	}
	if err != nil {
		return nil, domain.StorageError(err)
	}
	return &c, nil
}

func (r *contactRepo) Create(ctx context.Context, in domain.ContactInput) (string, error) {
	query := `INSERT INTO contacts (id, first_name, last_name, email, favorite_color, birthday)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	var id string
	err := r.db.QueryRow(ctx, query,
		primitive.NewObjectID().Hex(), in.FirstName, in.LastName, in.Email, in.FavoriteColor, in.Birthday,
	).Scan(&id)
	if err != nil {
		return "", domain.StorageError(err)
	}
	return id, nil
}

func (r *contactRepo) Update(ctx context.Context, id string, in domain.ContactInput) error {
	query := `UPDATE contacts SET first_name = $2, last_name = $3, email = $4, favorite_color = $5, birthday = $6
              WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, in.FirstName, in.LastName, in.Email, in.FavoriteColor, in.Birthday)
	if err != nil {
		return domain.StorageError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}

func (r *contactRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return domain.StorageError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}

func (r *contactRepo) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return domain.StorageError(err)
	}
	return nil
}
