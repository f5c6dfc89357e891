package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'budget_status') THEN
			CREATE TYPE budget_status AS ENUM ('DRAFT', 'APPROVED', 'REJECTED', 'CLOSED', 'INVOICED');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'budget_item_kind') THEN
			CREATE TYPE budget_item_kind AS ENUM ('PART', 'LABOR', 'PAINT');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'stock_movement_kind') THEN
			CREATE TYPE stock_movement_kind AS ENUM ('IN', 'OUT', 'ADJUST', 'RETURN');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'purchase_order_status') THEN
			CREATE TYPE purchase_order_status AS ENUM ('CREATED', 'SENT', 'PARTIAL', 'RECEIVED', 'CANCELLED');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'work_order_status') THEN
			CREATE TYPE work_order_status AS ENUM ('PENDING', 'IN_PROGRESS', 'COMPLETED', 'CANCELLED');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS clients (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		history TEXT NOT NULL DEFAULT '',
		preferences TEXT NOT NULL DEFAULT '',
		nps DOUBLE PRECISION NOT NULL DEFAULT 0,
		retention_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS interactions (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		client_id UUID NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		date TIMESTAMPTZ NOT NULL,
		kind VARCHAR(64) NOT NULL,
		outcome TEXT NOT NULL DEFAULT ''
	);`,
	`CREATE INDEX IF NOT EXISTS idx_interactions_client_id ON interactions (client_id);`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		vin VARCHAR(17) PRIMARY KEY,
		trim VARCHAR(128) NOT NULL DEFAULT '',
		age_years INT NOT NULL DEFAULT 0,
		residual_value NUMERIC(18,2) NOT NULL DEFAULT 0
	);`,
	`CREATE TABLE IF NOT EXISTS tariffs (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		labor_rate_per_hour NUMERIC(18,2) NOT NULL,
		paint_rate_per_hour NUMERIC(18,2) NOT NULL,
		tax_rate NUMERIC(8,4) NOT NULL,
		surcharge_factor NUMERIC(8,4) NOT NULL DEFAULT 1,
		discount_factor NUMERIC(8,4) NOT NULL DEFAULT 1,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS budgets (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		number VARCHAR(32) NOT NULL,
		client_id UUID REFERENCES clients(id),
		vehicle_vin VARCHAR(17) REFERENCES vehicles(vin),
		tax_applied NUMERIC(18,2) NOT NULL DEFAULT 0,
		total NUMERIC(18,2) NOT NULL DEFAULT 0,
		status budget_status NOT NULL DEFAULT 'DRAFT',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		approved_at TIMESTAMPTZ,
		notes TEXT NOT NULL DEFAULT ''
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_budget_number ON budgets (number);`,
	`CREATE INDEX IF NOT EXISTS idx_budgets_status ON budgets (status);`,
	`CREATE INDEX IF NOT EXISTS idx_budgets_client_id ON budgets (client_id) WHERE client_id IS NOT NULL;`,
	`CREATE TABLE IF NOT EXISTS budget_items (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		budget_id UUID NOT NULL REFERENCES budgets(id) ON DELETE CASCADE,
		kind budget_item_kind NOT NULL,
		code VARCHAR(64) NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		quantity INT NOT NULL DEFAULT 1,
		hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		unit_price NUMERIC(18,2) NOT NULL DEFAULT 0,
		adjustment_percent NUMERIC(8,4) NOT NULL DEFAULT 0,
		requires_paint BOOLEAN NOT NULL DEFAULT FALSE,
		requires_double_removal BOOLEAN NOT NULL DEFAULT FALSE,
		requires_alignment BOOLEAN NOT NULL DEFAULT FALSE
	);`,
	`CREATE INDEX IF NOT EXISTS idx_budget_items_budget_id ON budget_items (budget_id);`,
	`CREATE TABLE IF NOT EXISTS parts (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		sku VARCHAR(64) NOT NULL,
		name VARCHAR(255) NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		stock INT NOT NULL DEFAULT 0,
		stock_min INT NOT NULL DEFAULT 0,
		stock_max INT NOT NULL DEFAULT 0,
		avg_cost NUMERIC(18,2) NOT NULL DEFAULT 0,
		sale_price NUMERIC(18,2) NOT NULL DEFAULT 0,
		category VARCHAR(128) NOT NULL DEFAULT '',
		location VARCHAR(128) NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_parts_sku ON parts (sku);`,
	`CREATE TABLE IF NOT EXISTS suppliers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		tax_id VARCHAR(32) NOT NULL DEFAULT '',
		phone VARCHAR(32) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		contact VARCHAR(255) NOT NULL DEFAULT '',
		payment_terms VARCHAR(64) NOT NULL DEFAULT 'CASH',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS purchase_orders (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		number VARCHAR(32) NOT NULL,
		supplier_id UUID NOT NULL REFERENCES suppliers(id),
		status purchase_order_status NOT NULL DEFAULT 'CREATED',
		subtotal NUMERIC(18,2) NOT NULL DEFAULT 0,
		tax NUMERIC(18,2) NOT NULL DEFAULT 0,
		total NUMERIC(18,2) NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		user_id VARCHAR(64) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		sent_at TIMESTAMPTZ,
		received_at TIMESTAMPTZ
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_purchase_order_number ON purchase_orders (number);`,
	`CREATE TABLE IF NOT EXISTS purchase_order_items (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		purchase_order_id UUID NOT NULL REFERENCES purchase_orders(id) ON DELETE CASCADE,
		part_id UUID NOT NULL REFERENCES parts(id),
		quantity INT NOT NULL,
		unit_price NUMERIC(18,2) NOT NULL DEFAULT 0,
		received_qty INT NOT NULL DEFAULT 0
	);`,
	`CREATE INDEX IF NOT EXISTS idx_po_items_po_id ON purchase_order_items (purchase_order_id);`,
	`CREATE TABLE IF NOT EXISTS stock_movements (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		part_id UUID NOT NULL REFERENCES parts(id),
		kind stock_movement_kind NOT NULL,
		quantity INT NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		user_id VARCHAR(64) NOT NULL DEFAULT '',
		date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		purchase_order_id UUID REFERENCES purchase_orders(id),
		work_order_id UUID,
		stock_before INT NOT NULL,
		stock_after INT NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_stock_movements_part_id ON stock_movements (part_id);`,
	`CREATE TABLE IF NOT EXISTS technicians (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		first_name VARCHAR(128) NOT NULL,
		last_name VARCHAR(128) NOT NULL DEFAULT '',
		speciality VARCHAR(128) NOT NULL DEFAULT '',
		phone VARCHAR(32) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		hours_per_week DOUBLE PRECISION NOT NULL DEFAULT 40,
		cost_per_hour NUMERIC(18,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS work_orders (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		budget_id UUID NOT NULL REFERENCES budgets(id),
		technician_id UUID REFERENCES technicians(id),
		status work_order_status NOT NULL DEFAULT 'PENDING',
		estimated_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		actual_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		priority VARCHAR(16) NOT NULL DEFAULT 'NORMAL',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		started_at TIMESTAMPTZ,
		completed_at TIMESTAMPTZ
	);`,
	`CREATE INDEX IF NOT EXISTS idx_work_orders_budget_id ON work_orders (budget_id);`,
	`CREATE INDEX IF NOT EXISTS idx_work_orders_status ON work_orders (status);`,
	`CREATE TABLE IF NOT EXISTS work_order_items (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		work_order_id UUID NOT NULL REFERENCES work_orders(id) ON DELETE CASCADE,
		budget_item_id UUID NOT NULL,
		kind budget_item_kind NOT NULL,
		code VARCHAR(64) NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		quantity INT NOT NULL DEFAULT 1,
		estimated_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		actual_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		unit_price NUMERIC(18,2) NOT NULL DEFAULT 0,
		done BOOLEAN NOT NULL DEFAULT FALSE
	);`,
	`CREATE INDEX IF NOT EXISTS idx_work_order_items_wo_id ON work_order_items (work_order_id);`,
	`ALTER TABLE stock_movements DROP CONSTRAINT IF EXISTS fk_stock_movements_work_order;`,
	`ALTER TABLE stock_movements ADD CONSTRAINT fk_stock_movements_work_order
		FOREIGN KEY (work_order_id) REFERENCES work_orders(id);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
