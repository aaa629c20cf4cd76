package database

import (
	"context"
	"fmt"
)

// schema is applied on startup. Statements are idempotent so repeated
// boots are safe without a separate migration tool.
const schema = `
CREATE TABLE IF NOT EXISTS customers (
	id               UUID PRIMARY KEY,
	telegram_id      BIGINT UNIQUE NOT NULL,
	full_name        VARCHAR(100) NOT NULL,
	phone_number     VARCHAR(20) NOT NULL,
	delivery_address TEXT,
	language         VARCHAR(5) NOT NULL DEFAULT 'en',
	is_admin         BOOLEAN NOT NULL DEFAULT FALSE,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS categories (
	id            UUID PRIMARY KEY,
	name          VARCHAR(100) NOT NULL,
	name_en       VARCHAR(100),
	name_he       VARCHAR(100),
	display_order INT NOT NULL DEFAULT 0,
	is_active     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS products (
	id             UUID PRIMARY KEY,
	category_id    UUID NOT NULL REFERENCES categories(id),
	name           VARCHAR(100) NOT NULL,
	name_en        VARCHAR(100),
	name_he        VARCHAR(100),
	description    TEXT,
	description_en TEXT,
	description_he TEXT,
	price          NUMERIC(10,2) NOT NULL,
	options        JSONB,
	availability   JSONB,
	image_key      VARCHAR(255),
	is_active      BOOLEAN NOT NULL DEFAULT TRUE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id) WHERE is_active;

CREATE TABLE IF NOT EXISTS carts (
	id               UUID PRIMARY KEY,
	customer_id      UUID UNIQUE NOT NULL REFERENCES customers(id),
	delivery_method  VARCHAR(20) NOT NULL DEFAULT 'pickup',
	delivery_address TEXT,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS cart_items (
	id           UUID PRIMARY KEY,
	cart_id      UUID NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
	product_id   UUID NOT NULL REFERENCES products(id),
	quantity     INT NOT NULL CHECK (quantity >= 1),
	unit_price   NUMERIC(10,2) NOT NULL,
	options      JSONB,
	instructions TEXT,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_cart_items_cart ON cart_items(cart_id);

CREATE TABLE IF NOT EXISTS orders (
	id               UUID PRIMARY KEY,
	order_number     VARCHAR(20) UNIQUE NOT NULL,
	customer_id      UUID NOT NULL REFERENCES customers(id),
	delivery_method  VARCHAR(20) NOT NULL,
	delivery_address TEXT,
	delivery_fee     NUMERIC(10,2) NOT NULL DEFAULT 0,
	subtotal         NUMERIC(10,2) NOT NULL,
	total            NUMERIC(10,2) NOT NULL,
	status           VARCHAR(20) NOT NULL DEFAULT 'pending',
	note             TEXT,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);

CREATE TABLE IF NOT EXISTS order_items (
	id           UUID PRIMARY KEY,
	order_id     UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	product_name VARCHAR(100) NOT NULL,
	options      JSONB,
	quantity     INT NOT NULL,
	unit_price   NUMERIC(10,2) NOT NULL,
	total_price  NUMERIC(10,2) NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);

CREATE TABLE IF NOT EXISTS order_status_history (
	id          UUID PRIMARY KEY,
	order_id    UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	from_status VARCHAR(20),
	to_status   VARCHAR(20) NOT NULL,
	changed_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS order_sequences (
	seq_date DATE PRIMARY KEY,
	counter  INT NOT NULL
);
`

// Migrate applies the schema.
func (db *PostgresDB) Migrate(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	if _, err := db.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}
