package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"orderbot-backend/internal/domains/customer/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const customerColumns = `
	id, telegram_id, full_name, phone_number, delivery_address,
	language, is_admin, created_at, updated_at
`

func scanCustomer(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	err := row.Scan(
		&c.ID,
		&c.TelegramID,
		&c.FullName,
		&c.PhoneNumber,
		&c.DeliveryAddress,
		&c.Language,
		&c.IsAdmin,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan customer: %w", err)
	}
	return &c, nil
}

func (r *postgresRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE telegram_id = $1`
	return scanCustomer(r.pool.QueryRow(ctx, query, telegramID))
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return scanCustomer(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresRepository) Create(ctx context.Context, customer *model.Customer) error {
	query := `
		INSERT INTO customers (
			id, telegram_id, full_name, phone_number, delivery_address,
			language, is_admin, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		customer.ID,
		customer.TelegramID,
		customer.FullName,
		customer.PhoneNumber,
		customer.DeliveryAddress,
		customer.Language,
		customer.IsAdmin,
		customer.CreatedAt,
		customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

func (r *postgresRepository) Update(ctx context.Context, customer *model.Customer) error {
	query := `
		UPDATE customers
		SET full_name = $2, phone_number = $3, delivery_address = $4,
		    language = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		customer.ID,
		customer.FullName,
		customer.PhoneNumber,
		customer.DeliveryAddress,
		customer.Language,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCustomerNotFound
	}

	return nil
}

func (r *postgresRepository) UpdateLanguage(ctx context.Context, telegramID int64, language string) error {
	query := `UPDATE customers SET language = $2, updated_at = NOW() WHERE telegram_id = $1`

	tag, err := r.pool.Exec(ctx, query, telegramID, language)
	if err != nil {
		return fmt.Errorf("failed to update language: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCustomerNotFound
	}

	return nil
}

func (r *postgresRepository) UpdateAddress(ctx context.Context, telegramID int64, address string) error {
	query := `UPDATE customers SET delivery_address = $2, updated_at = NOW() WHERE telegram_id = $1`

	tag, err := r.pool.Exec(ctx, query, telegramID, address)
	if err != nil {
		return fmt.Errorf("failed to update address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCustomerNotFound
	}

	return nil
}

func (r *postgresRepository) List(ctx context.Context, limit, offset int) ([]model.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		var c model.Customer
		err := rows.Scan(
			&c.ID,
			&c.TelegramID,
			&c.FullName,
			&c.PhoneNumber,
			&c.DeliveryAddress,
			&c.Language,
			&c.IsAdmin,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	return customers, rows.Err()
}
