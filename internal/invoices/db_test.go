package invoice

import (
	"context"
	"fmt"
	"testing"

	"github.com/Harshalkatakiya/invoice-maker/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupInvoiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  product_id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_name TEXT NOT NULL,
  rate NUMERIC NOT NULL,
  unit TEXT NOT NULL
);`
	invoices := `
CREATE TABLE IF NOT EXISTS invoices (
  invoice_id INTEGER PRIMARY KEY AUTOINCREMENT,
  invoice_no INTEGER NOT NULL UNIQUE,
  invoice_date DATETIME NOT NULL,
  customer_name TEXT NOT NULL,
  total_amount NUMERIC NOT NULL DEFAULT 0
);`
	invoiceLines := `
CREATE TABLE IF NOT EXISTS invoice_lines (
  line_id INTEGER PRIMARY KEY AUTOINCREMENT,
  invoice_id INTEGER NOT NULL,
  product_id INTEGER NOT NULL,
  rate NUMERIC NOT NULL,
  unit TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  discount NUMERIC NOT NULL DEFAULT 0,
  net_amount NUMERIC NOT NULL,
  total_amount NUMERIC NOT NULL
);`
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(invoices).Error)
	require.NoError(t, db.Exec(invoiceLines).Error)
	return db
}

func mustCreateTestProduct(t *testing.T, db *gorm.DB, name, rate, unit string) *models.Product {
	t.Helper()
	row := &models.Product{
		Name: name,
		Rate: decimal.RequireFromString(rate),
		Unit: unit,
	}
	require.NoError(t, db.Create(row).Error)
	return row
}

// gormTxRunner mirrors the production transaction runner on a plain GORM
// connection, for tests that drive the service against sqlite.
type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
