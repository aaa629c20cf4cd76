package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"orderbot-backend/internal/domains/order/model"
	"orderbot-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const orderColumns = `
	id, order_number, customer_id, delivery_method, delivery_address,
	delivery_fee, subtotal, total, status, note, created_at, updated_at
`

const uniqueViolation = "23505"

func (r *postgresRepository) Create(ctx context.Context, order *model.Order, cartID uuid.UUID) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		// One counter row per date; the upsert makes allocation atomic
		// under concurrent checkouts.
		seqQuery := `
			INSERT INTO order_sequences (seq_date, counter)
			VALUES ($1, 1)
			ON CONFLICT (seq_date) DO UPDATE SET counter = order_sequences.counter + 1
			RETURNING counter
		`

		var seq int
		if err := tx.QueryRow(ctx, seqQuery, order.CreatedAt).Scan(&seq); err != nil {
			return fmt.Errorf("failed to allocate order number: %w", err)
		}
		order.OrderNumber = model.FormatOrderNumber(order.CreatedAt, seq)

		insertOrder := `
			INSERT INTO orders (` + orderColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`
		_, err := tx.Exec(ctx, insertOrder,
			order.ID, order.OrderNumber, order.CustomerID, order.DeliveryMethod, order.DeliveryAddress,
			order.DeliveryFee, order.Subtotal, order.Total, order.Status, order.Note,
			order.CreatedAt, order.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		insertItem := `
			INSERT INTO order_items (id, order_id, product_name, options, quantity, unit_price, total_price, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		for i := range order.Items {
			item := &order.Items[i]
			_, err := tx.Exec(ctx, insertItem,
				item.ID, item.OrderID, item.ProductName, item.Options,
				item.Quantity, item.UnitPrice, item.TotalPrice, item.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert order item: %w", err)
			}
		}

		insertHistory := `
			INSERT INTO order_status_history (id, order_id, from_status, to_status, changed_at)
			VALUES ($1, $2, NULL, $3, $4)
		`
		if _, err := tx.Exec(ctx, insertHistory, uuid.New(), order.ID, order.Status, order.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert status history: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		return nil
	})

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return model.ErrSequenceConflict
	}

	return err
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var o model.Order
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.OrderNumber, &o.CustomerID, &o.DeliveryMethod, &o.DeliveryAddress,
		&o.DeliveryFee, &o.Subtotal, &o.Total, &o.Status, &o.Note,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	items, err := r.loadItems(ctx, []uuid.UUID{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]

	return &o, nil
}

func (r *postgresRepository) GetDetail(ctx context.Context, id uuid.UUID) (*model.Detail, error) {
	query := `
		SELECT o.id, o.order_number, o.customer_id, o.delivery_method, o.delivery_address,
		       o.delivery_fee, o.subtotal, o.total, o.status, o.note, o.created_at, o.updated_at,
		       c.full_name, c.phone_number, c.telegram_id, c.language
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.id = $1
	`

	var d model.Detail
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.OrderNumber, &d.CustomerID, &d.DeliveryMethod, &d.DeliveryAddress,
		&d.DeliveryFee, &d.Subtotal, &d.Total, &d.Status, &d.Note, &d.CreatedAt, &d.UpdatedAt,
		&d.CustomerName, &d.CustomerPhone, &d.CustomerChatID, &d.CustomerLanguage,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan order detail: %w", err)
	}

	items, err := r.loadItems(ctx, []uuid.UUID{d.ID})
	if err != nil {
		return nil, err
	}
	d.Items = items[d.ID]

	return &d, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.Filter) ([]model.Detail, error) {
	query := `
		SELECT o.id, o.order_number, o.customer_id, o.delivery_method, o.delivery_address,
		       o.delivery_fee, o.subtotal, o.total, o.status, o.note, o.created_at, o.updated_at,
		       c.full_name, c.phone_number, c.telegram_id, c.language
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE 1=1
	`

	var args []interface{}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND o.status = $%d", len(args))
	}
	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		query += fmt.Sprintf(" AND o.customer_id = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND o.created_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND o.created_at < $%d", len(args))
	}

	query += " ORDER BY o.created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var details []model.Detail
	var ids []uuid.UUID
	for rows.Next() {
		var d model.Detail
		err := rows.Scan(
			&d.ID, &d.OrderNumber, &d.CustomerID, &d.DeliveryMethod, &d.DeliveryAddress,
			&d.DeliveryFee, &d.Subtotal, &d.Total, &d.Status, &d.Note, &d.CreatedAt, &d.UpdatedAt,
			&d.CustomerName, &d.CustomerPhone, &d.CustomerChatID, &d.CustomerLanguage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order detail: %w", err)
		}
		details = append(details, d)
		ids = append(ids, d.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Batch-load items so the listing stays two queries regardless of
	// the number of orders.
	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range details {
		details[i].Items = items[details[i].ID]
	}

	return details, nil
}

func (r *postgresRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, customerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	var ids []uuid.UUID
	for rows.Next() {
		var o model.Order
		err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.CustomerID, &o.DeliveryMethod, &o.DeliveryAddress,
			&o.DeliveryFee, &o.Subtotal, &o.Total, &o.Status, &o.Note,
			&o.CreatedAt, &o.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}

	return orders, nil
}

func (r *postgresRepository) loadItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]model.OrderItem, error) {
	result := make(map[uuid.UUID][]model.OrderItem)
	if len(orderIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT id, order_id, product_name, options, quantity, unit_price, total_price, created_at
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var i model.OrderItem
		err := rows.Scan(
			&i.ID, &i.OrderID, &i.ProductName, &i.Options,
			&i.Quantity, &i.UnitPrice, &i.TotalPrice, &i.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result[i.OrderID] = append(result[i.OrderID], i)
	}

	return result, rows.Err()
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to model.Status) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		// The status guard makes concurrent admin updates lose cleanly
		// instead of double-applying.
		update := `
			UPDATE orders SET status = $3, updated_at = NOW()
			WHERE id = $1 AND status = $2
		`
		tag, err := tx.Exec(ctx, update, orderID, from, to)
		if err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrOrderNotFound
		}

		history := `
			INSERT INTO order_status_history (id, order_id, from_status, to_status, changed_at)
			VALUES ($1, $2, $3, $4, NOW())
		`
		if _, err := tx.Exec(ctx, history, uuid.New(), orderID, from, to); err != nil {
			return fmt.Errorf("failed to insert status history: %w", err)
		}

		return nil
	})
}

func (r *postgresRepository) StatusHistory(ctx context.Context, orderID uuid.UUID) ([]model.StatusChange, error) {
	query := `
		SELECT id, order_id, from_status, to_status, changed_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY changed_at
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load status history: %w", err)
	}
	defer rows.Close()

	var changes []model.StatusChange
	for rows.Next() {
		var c model.StatusChange
		if err := rows.Scan(&c.ID, &c.OrderID, &c.FromStatus, &c.ToStatus, &c.ChangedAt); err != nil {
			return nil, fmt.Errorf("failed to scan status change: %w", err)
		}
		changes = append(changes, c)
	}

	return changes, rows.Err()
}

func (r *postgresRepository) DailyTotals(ctx context.Context, date time.Time) (*model.DailyTotals, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	query := `
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2 AND status <> $3
	`

	totals := &model.DailyTotals{Date: dayStart}
	err := r.pool.QueryRow(ctx, query, dayStart, dayEnd, model.StatusCancelled).
		Scan(&totals.OrderCount, &totals.Revenue)
	if err != nil {
		return nil, fmt.Errorf("failed to compute daily totals: %w", err)
	}

	return totals, nil
}

func (r *postgresRepository) Analytics(ctx context.Context, from, to time.Time) (*model.Analytics, error) {
	report := &model.Analytics{
		From:           from,
		To:             to,
		TotalRevenue:   decimal.Zero,
		StatusCounts:   make(map[string]int),
		DeliveryCounts: make(map[string]int),
	}

	query := `
		SELECT status, delivery_method, COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY status, delivery_method
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate orders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status, method string
		var count int
		var revenue decimal.Decimal
		if err := rows.Scan(&status, &method, &count, &revenue); err != nil {
			return nil, fmt.Errorf("failed to scan order aggregate: %w", err)
		}

		report.StatusCounts[status] += count
		if status == string(model.StatusCancelled) {
			continue
		}
		report.DeliveryCounts[method] += count
		report.TotalOrders += count
		report.TotalRevenue = report.TotalRevenue.Add(revenue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to aggregate orders: %w", err)
	}

	productQuery := `
		SELECT oi.product_name, SUM(oi.quantity), COALESCE(SUM(oi.total_price), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.created_at >= $1 AND o.created_at < $2 AND o.status <> $3
		GROUP BY oi.product_name
		ORDER BY SUM(oi.quantity) DESC
		LIMIT 5
	`

	productRows, err := r.pool.Query(ctx, productQuery, from, to, model.StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to rank products: %w", err)
	}
	defer productRows.Close()

	for productRows.Next() {
		var stat model.ProductStat
		if err := productRows.Scan(&stat.ProductName, &stat.TotalQuantity, &stat.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan product stat: %w", err)
		}
		report.TopProducts = append(report.TopProducts, stat)
	}

	return report, productRows.Err()
}
