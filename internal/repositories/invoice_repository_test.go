package repositories

import (
	"context"
	"os"
	"regexp"
	"testing"

	"invoice-backend/internal/database"
	"invoice-backend/internal/models"
	"invoice-backend/internal/sheet"
	"invoice-backend/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var invoiceNoPattern = regexp.MustCompile(`^inv-\d{6}\d{4}$`)

// testRepo connects to the database named by TEST_DATABASE_URL, runs the
// migrations, and truncates both tables. Tests are skipped when the variable
// is unset so the suite stays runnable without a database.
func testRepo(t *testing.T) *InvoiceRepository {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.NewMigratorWithFS(pool, migrations.FS).RunMigrations(ctx))

	_, err = pool.Exec(ctx, "TRUNCATE invoices, products RESTART IDENTITY")
	require.NoError(t, err)

	return NewInvoiceRepository(pool)
}

func createRequest(date string) *models.CreateInvoiceRequest {
	return &models.CreateInvoiceRequest{
		Date:            date,
		CustomerName:    "Acme Corp",
		SalespersonName: "Jane Doe",
		PaymentType:     "CASH",
		Notes:           "rush order",
		Products: []models.ProductInput{
			{ItemName: "Widget Deluxe", Quantity: 2, TotalCost: 10, TotalPrice: 25},
			{ItemName: "Gadget Supreme", Quantity: 1, TotalCost: 40, TotalPrice: 60},
		},
	}
}

func TestCreateAndList(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	invoiceNo, err := repo.Create(ctx, createRequest("2024-03-01"))
	require.NoError(t, err)
	assert.Regexp(t, invoiceNoPattern, invoiceNo)

	result, err := repo.List(ctx, "", 25, 1)
	require.NoError(t, err)
	require.Len(t, result.Invoices, 1)

	inv := result.Invoices[0]
	assert.Equal(t, invoiceNo, inv.InvoiceNo)
	assert.Equal(t, "2024-03-01", inv.Date)
	assert.Equal(t, "Acme Corp", inv.CustomerName)
	assert.Equal(t, "Jane Doe", inv.SalespersonName)
	assert.Equal(t, "CASH", inv.PaymentType)
	assert.Equal(t, "rush order", inv.Notes)

	require.Len(t, inv.Products, 2)
	assert.Equal(t, "Widget Deluxe", inv.Products[0].ItemName)
	assert.Equal(t, "Gadget Supreme", inv.Products[1].ItemName)

	// profit: (25-10) + (60-40); cash transactions: 25 + 60
	assert.InDelta(t, 35, result.TotalProfit, 0.001)
	assert.InDelta(t, 85, result.TotalCashTransactions, 0.001)
}

func TestCreateIsAtomicOnBadProduct(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	req := createRequest("2024-03-01")
	// Second product violates a column constraint; the whole insert must roll
	// back, including the header.
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	req.Products[1].ItemName = string(long)

	_, err := repo.Create(ctx, req)
	require.Error(t, err)
	assert.NotEqual(t, KindConflict, KindOf(err))

	result, err := repo.List(ctx, "", 25, 1)
	require.NoError(t, err)
	assert.Empty(t, result.Invoices)
}

func TestListFiltersByDate(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, createRequest("2024-03-01"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, createRequest("2024-03-01"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, createRequest("2024-03-02"))
	require.NoError(t, err)

	result, err := repo.List(ctx, "2024-03-01", 25, 1)
	require.NoError(t, err)
	assert.Len(t, result.Invoices, 2)

	result, err = repo.List(ctx, "2024-03-02", 25, 1)
	require.NoError(t, err)
	assert.Len(t, result.Invoices, 1)
}

func TestListPaginatesAndScopesTotals(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, createRequest("2024-03-01"))
		require.NoError(t, err)
	}

	page1, err := repo.List(ctx, "", 2, 1)
	require.NoError(t, err)
	assert.Len(t, page1.Invoices, 2)
	assert.InDelta(t, 70, page1.TotalProfit, 0.001)

	page2, err := repo.List(ctx, "", 2, 2)
	require.NoError(t, err)
	assert.Len(t, page2.Invoices, 1)
	assert.InDelta(t, 35, page2.TotalProfit, 0.001)

	// Stable ordering: no overlap between pages
	assert.NotEqual(t, page1.Invoices[0].InvoiceNo, page2.Invoices[0].InvoiceNo)
	assert.NotEqual(t, page1.Invoices[1].InvoiceNo, page2.Invoices[0].InvoiceNo)
}

func TestListEmptyPageHasZeroTotals(t *testing.T) {
	repo := testRepo(t)

	result, err := repo.List(context.Background(), "", 25, 1)
	require.NoError(t, err)
	assert.NotNil(t, result.Invoices)
	assert.Empty(t, result.Invoices)
	assert.Zero(t, result.TotalProfit)
	assert.Zero(t, result.TotalCashTransactions)
}

func TestCreditInvoiceExcludedFromCashTotal(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	req := createRequest("2024-03-01")
	req.PaymentType = "CREDIT"
	_, err := repo.Create(ctx, req)
	require.NoError(t, err)

	result, err := repo.List(ctx, "", 25, 1)
	require.NoError(t, err)
	assert.InDelta(t, 35, result.TotalProfit, 0.001)
	assert.Zero(t, result.TotalCashTransactions)
}

func TestUpdateReplacesHeaderAndProducts(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	invoiceNo, err := repo.Create(ctx, createRequest("2024-03-01"))
	require.NoError(t, err)

	customer := "Globex Inc"
	err = repo.Update(ctx, invoiceNo, &models.UpdateInvoiceRequest{
		CustomerName: &customer,
		Products: []models.ProductInput{
			{ItemName: "Replacement Part", Quantity: 5, TotalCost: 50, TotalPrice: 80},
		},
	})
	require.NoError(t, err)

	result, err := repo.List(ctx, "", 25, 1)
	require.NoError(t, err)
	require.Len(t, result.Invoices, 1)

	inv := result.Invoices[0]
	assert.Equal(t, "Globex Inc", inv.CustomerName)
	assert.Equal(t, "Jane Doe", inv.SalespersonName)
	require.Len(t, inv.Products, 1)
	assert.Equal(t, "Replacement Part", inv.Products[0].ItemName)
}

func TestUpdateMissingInvoiceIsSilentNoOp(t *testing.T) {
	repo := testRepo(t)

	customer := "Globex Inc"
	err := repo.Update(context.Background(), "inv-0000000000", &models.UpdateInvoiceRequest{
		CustomerName: &customer,
		Products: []models.ProductInput{
			{ItemName: "Phantom Item", Quantity: 1, TotalCost: 1, TotalPrice: 2},
		},
	})
	require.NoError(t, err)

	result, err := repo.List(context.Background(), "", 25, 1)
	require.NoError(t, err)
	assert.Empty(t, result.Invoices)
}

func TestUpdateWithoutHeaderFieldsLeavesProductsAlone(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	invoiceNo, err := repo.Create(ctx, createRequest("2024-03-01"))
	require.NoError(t, err)

	err = repo.Update(ctx, invoiceNo, &models.UpdateInvoiceRequest{
		Products: []models.ProductInput{
			{ItemName: "Should Not Appear", Quantity: 1, TotalCost: 1, TotalPrice: 2},
		},
	})
	require.NoError(t, err)

	result, err := repo.List(ctx, "", 25, 1)
	require.NoError(t, err)
	require.Len(t, result.Invoices, 1)
	require.Len(t, result.Invoices[0].Products, 2)
	assert.Equal(t, "Widget Deluxe", result.Invoices[0].Products[0].ItemName)
}

func TestDeleteRemovesInvoiceAndProducts(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	invoiceNo, err := repo.Create(ctx, createRequest("2024-03-01"))
	require.NoError(t, err)
	keepNo, err := repo.Create(ctx, createRequest("2024-03-02"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, invoiceNo))

	result, err := repo.List(ctx, "", 25, 1)
	require.NoError(t, err)
	require.Len(t, result.Invoices, 1)
	assert.Equal(t, keepNo, result.Invoices[0].InvoiceNo)

	products, err := repo.productsByInvoiceNo(ctx, invoiceNo)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestDeleteMissingInvoiceIsSilentNoOp(t *testing.T) {
	repo := testRepo(t)
	require.NoError(t, repo.Delete(context.Background(), "inv-0000000000"))
}

func TestInsertInvoiceIgnoreSkipsDuplicates(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	row := sheet.InvoiceRow{
		InvoiceNo:       "inv-0103241234",
		Date:            "2024-03-01",
		CustomerName:    "Acme Corp",
		SalespersonName: "Jane Doe",
		PaymentType:     "CASH",
	}

	inserted, err := repo.InsertInvoiceIgnore(ctx, row)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.InsertInvoiceIgnore(ctx, row)
	require.NoError(t, err)
	assert.False(t, inserted)

	result, err := repo.List(ctx, "", 25, 1)
	require.NoError(t, err)
	assert.Len(t, result.Invoices, 1)
}

func TestInsertProductAllowsRepeatedRows(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	row := sheet.ProductRow{
		InvoiceNo:  "inv-0103241234",
		ItemName:   "Widget Deluxe",
		Quantity:   2,
		TotalCost:  10,
		TotalPrice: 25,
	}

	// The products table has no unique key, so re-importing the same row
	// duplicates it instead of conflicting.
	require.NoError(t, repo.InsertProduct(ctx, row))
	require.NoError(t, repo.InsertProduct(ctx, row))

	products, err := repo.productsByInvoiceNo(ctx, row.InvoiceNo)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestCreateAllowsDuplicateItemNames(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	req := createRequest("2024-03-01")
	req.Products = []models.ProductInput{
		{ItemName: "Widget Deluxe", Quantity: 1, TotalCost: 10, TotalPrice: 25},
		{ItemName: "Widget Deluxe", Quantity: 3, TotalCost: 30, TotalPrice: 75},
	}

	// Two line items sharing a name must not be mistaken for an invoice
	// number collision; the create succeeds on the first attempt.
	invoiceNo, err := repo.Create(ctx, req)
	require.NoError(t, err)

	result, err := repo.List(ctx, "", 25, 1)
	require.NoError(t, err)
	require.Len(t, result.Invoices, 1)
	assert.Equal(t, invoiceNo, result.Invoices[0].InvoiceNo)
	require.Len(t, result.Invoices[0].Products, 2)
	assert.Equal(t, result.Invoices[0].Products[0].ItemName, result.Invoices[0].Products[1].ItemName)
}

func TestInsertInvoiceIgnoreRejectsBadDate(t *testing.T) {
	repo := testRepo(t)

	row := sheet.InvoiceRow{
		InvoiceNo:       "inv-0103249999",
		Date:            "not-a-date",
		CustomerName:    "Acme Corp",
		SalespersonName: "Jane Doe",
		PaymentType:     "CASH",
	}

	_, err := repo.InsertInvoiceIgnore(context.Background(), row)
	require.Error(t, err)
	assert.Equal(t, KindValidationFailed, KindOf(err))
}
