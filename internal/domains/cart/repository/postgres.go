package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"orderbot-backend/internal/domains/cart/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const cartColumns = `id, customer_id, delivery_method, delivery_address, created_at, updated_at`

const cartItemColumns = `id, cart_id, product_id, quantity, unit_price, options, instructions, created_at, updated_at`

func scanCart(row pgx.Row) (*model.Cart, error) {
	var c model.Cart
	err := row.Scan(
		&c.ID, &c.CustomerID, &c.DeliveryMethod, &c.DeliveryAddress,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan cart: %w", err)
	}
	return &c, nil
}

func (r *postgresRepository) GetOrCreate(ctx context.Context, customerID uuid.UUID) (*model.Cart, error) {
	// Upsert keeps one cart per customer without a read-then-insert race.
	query := `
		INSERT INTO carts (id, customer_id)
		VALUES ($1, $2)
		ON CONFLICT (customer_id) DO UPDATE SET updated_at = NOW()
		RETURNING ` + cartColumns

	cart, err := scanCart(r.pool.QueryRow(ctx, query, uuid.New(), customerID))
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, fmt.Errorf("cart upsert returned no row")
	}
	return cart, nil
}

func (r *postgresRepository) GetByCustomer(ctx context.Context, customerID uuid.UUID) (*model.Cart, error) {
	query := `SELECT ` + cartColumns + ` FROM carts WHERE customer_id = $1`
	return scanCart(r.pool.QueryRow(ctx, query, customerID))
}

func (r *postgresRepository) UpdateDelivery(ctx context.Context, cartID uuid.UUID, method string, address *string) error {
	query := `
		UPDATE carts
		SET delivery_method = $2, delivery_address = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, cartID, method, address)
	if err != nil {
		return fmt.Errorf("failed to update cart delivery: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartNotFound
	}

	return nil
}

func (r *postgresRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]model.CartItem, error) {
	query := `
		SELECT ` + cartItemColumns + `
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var i model.CartItem
		err := rows.Scan(
			&i.ID, &i.CartID, &i.ProductID, &i.Quantity, &i.UnitPrice,
			&i.Options, &i.Instructions, &i.CreatedAt, &i.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, i)
	}

	return items, rows.Err()
}

func (r *postgresRepository) ListItemsDetailed(ctx context.Context, cartID uuid.UUID) ([]model.ItemDetail, error) {
	query := `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.unit_price,
		       ci.options, ci.instructions, ci.created_at, ci.updated_at,
		       p.name, p.name_en, p.name_he
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at
	`

	rows, err := r.pool.Query(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	var items []model.ItemDetail
	for rows.Next() {
		var d model.ItemDetail
		err := rows.Scan(
			&d.ID, &d.CartID, &d.ProductID, &d.Quantity, &d.UnitPrice,
			&d.Options, &d.Instructions, &d.CreatedAt, &d.UpdatedAt,
			&d.ProductName, &d.ProductNameEN, &d.ProductNameHE,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, d)
	}

	return items, rows.Err()
}

func (r *postgresRepository) AddItem(ctx context.Context, item *model.CartItem) error {
	query := `
		INSERT INTO cart_items (` + cartItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID, item.CartID, item.ProductID, item.Quantity, item.UnitPrice,
		item.Options, item.Instructions, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	return nil
}

func (r *postgresRepository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	query := `UPDATE cart_items SET quantity = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, itemID, quantity)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}

	return nil
}

func (r *postgresRepository) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, itemID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}

	return nil
}

func (r *postgresRepository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE cart_id = $1`

	if _, err := r.pool.Exec(ctx, query, cartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}

func (r *postgresRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM carts c
		WHERE c.updated_at < $1
		  AND NOT EXISTS (SELECT 1 FROM cart_items ci WHERE ci.cart_id = c.id)
	`

	tag, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale carts: %w", err)
	}

	return tag.RowsAffected(), nil
}
