package invoice

import (
	"context"
	"errors"
	"io"
	"testing"

	product "github.com/Harshalkatakiya/invoice-maker/internal/products"
	"github.com/Harshalkatakiya/invoice-maker/pkg/db/models"
	pkgerrors "github.com/Harshalkatakiya/invoice-maker/pkg/errors"
	"github.com/Harshalkatakiya/invoice-maker/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T, conn *gorm.DB, tx txRunner) Service {
	t.Helper()
	if tx == nil {
		tx = gormTxRunner{db: conn}
	}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(NewRepository(conn), product.NewRepository(conn), tx, logg)
	require.NoError(t, err)
	return svc
}

func lineInput(productID int64, rate string, qty int, discount string) LineInput {
	return LineInput{
		Customer:  "Acme Traders",
		ProductID: productID,
		Rate:      decimal.RequireFromString(rate),
		Unit:      "unit",
		Quantity:  qty,
		Discount:  decimal.RequireFromString(discount),
	}
}

func TestCreateInvoiceHappyPath(t *testing.T) {
	conn := setupInvoiceTestDB(t)
	svc := newTestService(t, conn, nil)
	ctx := context.Background()
	prod := mustCreateTestProduct(t, conn, "Cement", "100.00", "bag")

	dto, err := svc.Create(ctx, []LineInput{
		lineInput(prod.ID, "100.00", 3, "10"),
		lineInput(prod.ID, "19.99", 1, "33.33"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), dto.InvoiceNo)
	assert.Equal(t, "Acme Traders", dto.CustomerName)
	require.Len(t, dto.Lines, 2)
	assert.Equal(t, "90.00", dto.Lines[0].NetAmount.StringFixed(2))
	assert.Equal(t, "270.00", dto.Lines[0].TotalAmount.StringFixed(2))
	assert.Equal(t, "13.33", dto.Lines[1].NetAmount.StringFixed(2))
	assert.Equal(t, "283.33", dto.TotalAmount.StringFixed(2))
}

func TestCreateInvoiceNumbersAreSequential(t *testing.T) {
	conn := setupInvoiceTestDB(t)
	svc := newTestService(t, conn, nil)
	ctx := context.Background()
	prod := mustCreateTestProduct(t, conn, "Sand", "55.00", "ton")

	first, err := svc.Create(ctx, []LineInput{lineInput(prod.ID, "55.00", 1, "0")})
	require.NoError(t, err)
	second, err := svc.Create(ctx, []LineInput{lineInput(prod.ID, "55.00", 2, "0")})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.InvoiceNo)
	assert.Equal(t, int64(2), second.InvoiceNo)
}

func TestCreateInvoiceSkipsGapsInNumbering(t *testing.T) {
	conn := setupInvoiceTestDB(t)
	svc := newTestService(t, conn, nil)
	ctx := context.Background()
	prod := mustCreateTestProduct(t, conn, "Sand", "55.00", "ton")

	// existing history {1, 2, 5}: the next assigned number is 6
	for _, no := range []int64{1, 2, 5} {
		require.NoError(t, conn.Create(&models.Invoice{
			InvoiceNo:    no,
			CustomerName: "History",
			TotalAmount:  decimal.Zero,
		}).Error)
	}

	dto, err := svc.Create(ctx, []LineInput{lineInput(prod.ID, "55.00", 1, "0")})
	require.NoError(t, err)
	assert.Equal(t, int64(6), dto.InvoiceNo)
}

func TestCreateInvoiceRejectsEmptyBatch(t *testing.T) {
	conn := setupInvoiceTestDB(t)
	svc := newTestService(t, conn, nil)

	_, err := svc.Create(context.Background(), nil)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	var count int64
	require.NoError(t, conn.Model(&models.Invoice{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateInvoiceReportsMissingProductsOnce(t *testing.T) {
	conn := setupInvoiceTestDB(t)
	svc := newTestService(t, conn, nil)
	ctx := context.Background()
	prod := mustCreateTestProduct(t, conn, "Cement", "100.00", "bag")

	_, err := svc.Create(ctx, []LineInput{
		lineInput(999, "10.00", 1, "0"),
		lineInput(prod.ID, "100.00", 1, "0"),
		lineInput(999, "10.00", 2, "0"),
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "Product IDs not found: 999", typed.Message())

	// validation failures must leave no rows behind
	var headers, lines int64
	require.NoError(t, conn.Model(&models.Invoice{}).Count(&headers).Error)
	require.NoError(t, conn.Model(&models.InvoiceLine{}).Count(&lines).Error)
	assert.Zero(t, headers)
	assert.Zero(t, lines)
}

func TestCreateInvoiceAggregatesLineErrors(t *testing.T) {
	conn := setupInvoiceTestDB(t)
	svc := newTestService(t, conn, nil)
	prod := mustCreateTestProduct(t, conn, "Cement", "100.00", "bag")

	_, err := svc.Create(context.Background(), []LineInput{
		lineInput(prod.ID, "100.00", 0, "0"),
		lineInput(prod.ID, "100.00", 1, "150"),
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Contains(t, typed.Message(), "line 0: quantity must be at least 1")
	assert.Contains(t, typed.Message(), "line 1: discount must be between 0 and 100")
}

func TestCreateInvoiceRollsBackOnLineFailure(t *testing.T) {
	conn := setupInvoiceTestDB(t)
	svc := newTestService(t, conn, nil)
	ctx := context.Background()
	prod := mustCreateTestProduct(t, conn, "Cement", "100.00", "bag")

	// force the batched line insert to fail mid-transaction
	require.NoError(t, conn.Exec("DROP TABLE invoice_lines").Error)

	_, err := svc.Create(ctx, []LineInput{lineInput(prod.ID, "100.00", 1, "0")})
	require.Error(t, err)

	var headers int64
	require.NoError(t, conn.Model(&models.Invoice{}).Count(&headers).Error)
	assert.Zero(t, headers, "header insert must not survive a failed line insert")
}

// flakyTxRunner simulates losing the invoice-number race: the first failures
// calls report a unique violation before delegating to the real runner.
type flakyTxRunner struct {
	inner    txRunner
	failures int
	calls    int
}

func (f *flakyTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("UNIQUE constraint failed: invoices.invoice_no")
	}
	return f.inner.WithTx(ctx, fn)
}

func TestCreateInvoiceRetriesNumberConflicts(t *testing.T) {
	conn := setupInvoiceTestDB(t)
	runner := &flakyTxRunner{inner: gormTxRunner{db: conn}, failures: 2}
	svc := newTestService(t, conn, runner)
	prod := mustCreateTestProduct(t, conn, "Cement", "100.00", "bag")

	dto, err := svc.Create(context.Background(), []LineInput{lineInput(prod.ID, "100.00", 1, "0")})
	require.NoError(t, err)
	assert.Equal(t, 3, runner.calls)
	assert.Equal(t, int64(1), dto.InvoiceNo)
}

func TestCreateInvoiceGivesUpAfterRepeatedConflicts(t *testing.T) {
	conn := setupInvoiceTestDB(t)
	runner := &flakyTxRunner{inner: gormTxRunner{db: conn}, failures: createAttempts}
	svc := newTestService(t, conn, runner)
	prod := mustCreateTestProduct(t, conn, "Cement", "100.00", "bag")

	_, err := svc.Create(context.Background(), []LineInput{lineInput(prod.ID, "100.00", 1, "0")})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
	assert.Equal(t, createAttempts, runner.calls)
}

func TestGetReturnsPersistedAmountsUnchanged(t *testing.T) {
	conn := setupInvoiceTestDB(t)
	svc := newTestService(t, conn, nil)
	ctx := context.Background()
	prod := mustCreateTestProduct(t, conn, "Cement", "100.00", "bag")

	created, err := svc.Create(ctx, []LineInput{
		lineInput(prod.ID, "19.99", 1, "33.33"),
		lineInput(prod.ID, "100.00", 3, "10"),
	})
	require.NoError(t, err)

	loaded, err := svc.Get(ctx, created.InvoiceID)
	require.NoError(t, err)

	assert.Equal(t, created.InvoiceNo, loaded.InvoiceNo)
	assert.Equal(t, created.TotalAmount.StringFixed(2), loaded.TotalAmount.StringFixed(2))
	require.Len(t, loaded.Lines, len(created.Lines))
	for i := range loaded.Lines {
		assert.Equal(t, created.Lines[i].NetAmount.StringFixed(2), loaded.Lines[i].NetAmount.StringFixed(2))
		assert.Equal(t, created.Lines[i].TotalAmount.StringFixed(2), loaded.Lines[i].TotalAmount.StringFixed(2))
	}

	sum := decimal.Zero
	for _, line := range loaded.Lines {
		sum = sum.Add(line.TotalAmount)
	}
	assert.True(t, sum.Equal(loaded.TotalAmount), "header total must equal the sum of line totals")
}

func TestGetUnknownInvoice(t *testing.T) {
	conn := setupInvoiceTestDB(t)
	svc := newTestService(t, conn, nil)

	_, err := svc.Get(context.Background(), 424242)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
