package persistence

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kindled/kindled/internal/domain/client"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const pgUniqueViolation = "23505"

type postgresClientRepo struct {
	db *pgxpool.Pool
}

func NewPostgresClientRepo(db *pgxpool.Pool) client.Repository {
	return &postgresClientRepo{db: db}
}

const clientColumns = `id, email, password_hash, name, surname, sex, photo_url, photo_public_id, latitude, longitude, registered_on`

func scanClient(row pgx.Row) (*client.Client, error) {
	c := &client.Client{}
	err := row.Scan(
		&c.ID,
		&c.Email,
		&c.PasswordHash,
		&c.Name,
		&c.Surname,
		&c.Sex,
		&c.PhotoURL,
		&c.PhotoPublicID,
		&c.Latitude,
		&c.Longitude,
		&c.RegisteredOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, client.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to scan client row: %w", err)
	}
	return c, nil
}

func (r *postgresClientRepo) Save(ctx context.Context, c *client.Client) error {
	query := `
		INSERT INTO clients (id, email, password_hash, name, surname, sex, photo_url, photo_public_id, latitude, longitude, registered_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.Email, c.PasswordHash, c.Name, c.Surname, c.Sex,
		c.PhotoURL, c.PhotoPublicID, c.Latitude, c.Longitude, c.RegisteredOn,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return client.ErrEmailTaken
		}
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

func (r *postgresClientRepo) FindByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE id = $1`, clientColumns)
	return scanClient(r.db.QueryRow(ctx, query, id))
}

func (r *postgresClientRepo) FindByEmail(ctx context.Context, email string) (*client.Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE email = $1`, clientColumns)
	return scanClient(r.db.QueryRow(ctx, query, email))
}

func (r *postgresClientRepo) Update(ctx context.Context, c *client.Client) error {
	query := `
		UPDATE clients SET
			email = $2, password_hash = $3, name = $4, surname = $5, sex = $6,
			photo_url = $7, photo_public_id = $8, latitude = $9, longitude = $10
		WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query,
		c.ID, c.Email, c.PasswordHash, c.Name, c.Surname, c.Sex,
		c.PhotoURL, c.PhotoPublicID, c.Latitude, c.Longitude,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return client.ErrEmailTaken
		}
		return fmt.Errorf("failed to update client: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return client.ErrClientNotFound
	}
	return nil
}

func (r *postgresClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return client.ErrClientNotFound
	}
	return nil
}

// List runs the directory query. Filters are conjunctive; name and surname
// match as case-insensitive substrings.
func (r *postgresClientRepo) List(ctx context.Context, filter client.ListFilter) ([]*client.Client, error) {
	builder := psql.Select(clientColumns).From("clients")

	if filter.Sex != nil {
		builder = builder.Where(sq.Eq{"sex": *filter.Sex})
	}
	if filter.Name != nil {
		builder = builder.Where(sq.ILike{"name": "%" + *filter.Name + "%"})
	}
	if filter.Surname != nil {
		builder = builder.Where(sq.ILike{"surname": "%" + *filter.Surname + "%"})
	}
	if filter.RegisteredFrom != nil {
		builder = builder.Where(sq.GtOrEq{"registered_on": *filter.RegisteredFrom})
	}
	if filter.RegisteredTo != nil {
		builder = builder.Where(sq.LtOrEq{"registered_on": *filter.RegisteredTo})
	}
	if filter.SortByDate {
		builder = builder.OrderBy("registered_on ASC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	clients := make([]*client.Client, 0)
	for rows.Next() {
		c := &client.Client{}
		err := rows.Scan(
			&c.ID,
			&c.Email,
			&c.PasswordHash,
			&c.Name,
			&c.Surname,
			&c.Sex,
			&c.PhotoURL,
			&c.PhotoPublicID,
			&c.Latitude,
			&c.Longitude,
			&c.RegisteredOn,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row during iteration: %w", err)
		}
		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}
	return clients, nil
}
