package postgres

import (
	"context"
	"fmt"

	"facturis/pkg/logger"
)

// schemaDDL bootstraps the full schema. Statements are idempotent so the
// bootstrap can run on every startup.
//
// Deletion policy:
// - company -> clients / invoices: CASCADE
// - client -> invoices: RESTRICT (a client with invoices cannot be deleted)
// Invoice identity (company_id, series, year, number) is enforced by a
// unique constraint as the last line of defense behind the advisory lock.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS companies (
    id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    name        TEXT        NOT NULL,
    tax_id      TEXT        NOT NULL UNIQUE,
    series      TEXT        NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS clients (
    id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    company_id  BIGINT      NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
    name        TEXT        NOT NULL,
    tax_id      TEXT,
    registry_id TEXT,
    address     TEXT,
    vat_payer   BOOLEAN     NOT NULL DEFAULT false,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_clients_company ON clients(company_id);

CREATE TABLE IF NOT EXISTS invoices (
    id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    company_id  BIGINT        NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
    client_id   BIGINT        NOT NULL REFERENCES clients(id) ON DELETE RESTRICT,
    series      TEXT          NOT NULL,
    year        INTEGER       NOT NULL,
    number      BIGINT        NOT NULL,
    issue_date  DATE          NOT NULL,
    due_date    DATE,
    currency    TEXT          NOT NULL DEFAULT 'RON',
    notes       TEXT,
    subtotal    NUMERIC(14,2) NOT NULL,
    vat_total   NUMERIC(14,2) NOT NULL,
    total       NUMERIC(14,2) NOT NULL,
    created_at  TIMESTAMPTZ   NOT NULL DEFAULT now(),
    CONSTRAINT uq_invoice_identity UNIQUE (company_id, series, year, number)
);

CREATE INDEX IF NOT EXISTS idx_invoices_company ON invoices(company_id);
CREATE INDEX IF NOT EXISTS idx_invoices_client ON invoices(client_id);

CREATE TABLE IF NOT EXISTS invoice_lines (
    id            BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    invoice_id    BIGINT        NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
    line_no       INTEGER       NOT NULL,
    description   TEXT          NOT NULL,
    unit          TEXT          NOT NULL,
    quantity      NUMERIC(12,3) NOT NULL CHECK (quantity > 0),
    unit_price    NUMERIC(14,2) NOT NULL CHECK (unit_price >= 0),
    vat_rate      NUMERIC(5,2)  NOT NULL CHECK (vat_rate >= 0 AND vat_rate <= 100),
    line_subtotal NUMERIC(14,2) NOT NULL,
    line_vat      NUMERIC(14,2) NOT NULL,
    line_total    NUMERIC(14,2) NOT NULL,
    CONSTRAINT uq_invoice_line_no UNIQUE (invoice_id, line_no)
);
`

// Migrate applies the embedded schema DDL.
func Migrate(ctx context.Context, pool *Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	logger.Info(ctx, "database schema applied")
	return nil
}
