package repository

import (
	"context"

	"github.com/consultoriamelchior-max/nexus-processual/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ClientRepository handles database operations for clients
type ClientRepository struct {
	db *pgxpool.Pool
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create creates a new client
func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (
			user_id, full_name, phone, email, cpf_or_identifier
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		client.UserID,
		client.FullName,
		client.Phone,
		client.Email,
		client.CPFOrIdentifier,
	).Scan(&client.ID, &client.CreatedAt)

	return err
}

// GetByID retrieves a client by ID
func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	client := &models.Client{}
	query := `
		SELECT id, user_id, full_name, phone, email, cpf_or_identifier, created_at
		FROM clients
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&client.ID,
		&client.UserID,
		&client.FullName,
		&client.Phone,
		&client.Email,
		&client.CPFOrIdentifier,
		&client.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return client, nil
}

// ListByUserID retrieves all clients for an operator, ordered by name
func (r *ClientRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Client, error) {
	query := `
		SELECT id, user_id, full_name, phone, email, cpf_or_identifier, created_at
		FROM clients
		WHERE user_id = $1
		ORDER BY full_name`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		client := &models.Client{}
		err := rows.Scan(
			&client.ID,
			&client.UserID,
			&client.FullName,
			&client.Phone,
			&client.Email,
			&client.CPFOrIdentifier,
			&client.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	return clients, rows.Err()
}

// Delete deletes a client
func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM clients WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
