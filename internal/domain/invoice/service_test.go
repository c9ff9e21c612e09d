package invoice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facturis/internal/core/apperror"
	"facturis/internal/domain"
	"facturis/internal/domain/client"
	"facturis/internal/domain/company"
)

// --- Fakes ---

type fakeInvoiceRepo struct {
	nextID int64

	created    []*Invoice
	savedLines map[int64][]Line

	createErr    error
	saveLinesErr error
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{nextID: 100, savedLines: map[int64][]Line{}}
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, inv *Invoice) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	inv.ID = f.nextID
	inv.CreatedAt = time.Now()
	f.created = append(f.created, inv)
	return nil
}

func (f *fakeInvoiceRepo) SaveLines(ctx context.Context, invoiceID int64, lines []Line) error {
	if f.saveLinesErr != nil {
		return f.saveLinesErr
	}
	f.savedLines[invoiceID] = lines
	return nil
}

func (f *fakeInvoiceRepo) GetByID(ctx context.Context, id int64) (*Invoice, error) {
	for _, inv := range f.created {
		if inv.ID == id {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("invoice", id)
}

func (f *fakeInvoiceRepo) GetLines(ctx context.Context, invoiceID int64) ([]Line, error) {
	return f.savedLines[invoiceID], nil
}

func (f *fakeInvoiceRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Invoice], error) {
	items := []*Invoice{}
	for _, inv := range f.created {
		if filter.CompanyID == 0 || inv.CompanyID == filter.CompanyID {
			items = append(items, inv)
		}
	}
	return domain.ListResult[*Invoice]{
		Items:      items,
		TotalCount: int64(len(items)),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}, nil
}

type fakeCompanyRepo struct {
	companies map[int64]*company.Company
}

func (f *fakeCompanyRepo) Create(ctx context.Context, c *company.Company) error { return nil }

func (f *fakeCompanyRepo) GetByID(ctx context.Context, id int64) (*company.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return nil, apperror.NewNotFound("company", id)
	}
	return c, nil
}

func (f *fakeCompanyRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*company.Company], error) {
	return domain.ListResult[*company.Company]{}, nil
}

type fakeClientRepo struct {
	clients map[int64]*client.Client
}

func (f *fakeClientRepo) Create(ctx context.Context, c *client.Client) error { return nil }

func (f *fakeClientRepo) GetByID(ctx context.Context, id int64) (*client.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, apperror.NewNotFound("client", id)
	}
	return c, nil
}

func (f *fakeClientRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*client.Client], error) {
	return domain.ListResult[*client.Client]{}, nil
}

type fakeAllocator struct {
	next   int64
	scopes []NumberScope
	err    error
}

func (f *fakeAllocator) Next(ctx context.Context, scope NumberScope) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.scopes = append(f.scopes, scope)
	f.next++
	return f.next, nil
}

// recordingTxManager runs fn directly and records what it returned, so
// tests can assert that a failure inside the transaction propagated and
// would have triggered a rollback. Real rollback semantics belong to the
// persistence layer.
type recordingTxManager struct {
	calls   int
	lastErr error
}

func (m *recordingTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	m.lastErr = fn(ctx)
	return m.lastErr
}

// --- Test setup ---

type serviceFixture struct {
	repo      *fakeInvoiceRepo
	allocator *fakeAllocator
	txManager *recordingTxManager
	service   *Service
}

func newServiceFixture() *serviceFixture {
	repo := newFakeInvoiceRepo()
	allocator := &fakeAllocator{}
	txManager := &recordingTxManager{}

	companies := &fakeCompanyRepo{companies: map[int64]*company.Company{
		1: {ID: 1, Name: "Rosia Demo SRL", TaxID: "RO11111111", Series: "ROS"},
		2: {ID: 2, Name: "Alta Firma SRL", TaxID: "RO99999999", Series: "ALT"},
	}}
	clients := &fakeClientRepo{clients: map[int64]*client.Client{
		10: {ID: 10, CompanyID: 1, Name: "Client Unu SRL"},
		20: {ID: 20, CompanyID: 2, Name: "Client Doi PFA"},
	}}

	svc := NewService(repo, companies, clients, allocator, txManager)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	}

	return &serviceFixture{repo: repo, allocator: allocator, txManager: txManager, service: svc}
}

func validInput() CreateInput {
	return CreateInput{
		CompanyID: 1,
		ClientID:  10,
		Lines: []LineInput{
			{
				Description: "Servicii consultanta",
				Quantity:    decimal.NewFromInt(2),
				UnitPrice:   decimal.NewFromInt(100),
				VATRate:     decimal.NewFromInt(19),
			},
			{
				Description: "Abonament lunar",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   decimal.RequireFromString("49.99"),
				VATRate:     decimal.NewFromInt(19),
			},
		},
	}
}

// --- Tests ---

func TestCreate_AllocatesNumberAndComputesTotals(t *testing.T) {
	f := newServiceFixture()

	inv, err := f.service.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, int64(1), inv.Number)
	assert.Equal(t, "ROS", inv.Series)
	assert.Equal(t, 2026, inv.Year)
	assert.Equal(t, DefaultCurrency, inv.Currency)

	// 200 + 49.99 = 249.99; VAT 38 + 9.4981 = 47.4981 -> 47.50
	assert.Equal(t, "249.99", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "47.50", inv.VATTotal.StringFixed(2))
	assert.Equal(t, "297.49", inv.Total.StringFixed(2))

	require.Len(t, f.allocator.scopes, 1)
	assert.Equal(t, NumberScope{CompanyID: 1, Series: "ROS", Year: 2026}, f.allocator.scopes[0])
}

func TestCreate_AssignsPositionalLineNumbers(t *testing.T) {
	f := newServiceFixture()

	inv, err := f.service.Create(context.Background(), validInput())
	require.NoError(t, err)

	lines := f.repo.savedLines[inv.ID]
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].LineNo)
	assert.Equal(t, "Servicii consultanta", lines[0].Description)
	assert.Equal(t, 2, lines[1].LineNo)
	assert.Equal(t, "Abonament lunar", lines[1].Description)

	// Per-line persisted values are rounded to 2 decimals
	assert.Equal(t, "200.00", lines[0].LineSubtotal.StringFixed(2))
	assert.Equal(t, "38.00", lines[0].LineVAT.StringFixed(2))
	assert.Equal(t, "238.00", lines[0].LineTotal.StringFixed(2))
}

func TestCreate_SequentialNumbersPerScope(t *testing.T) {
	f := newServiceFixture()

	first, err := f.service.Create(context.Background(), validInput())
	require.NoError(t, err)
	second, err := f.service.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Number)
	assert.Equal(t, int64(2), second.Number)
}

func TestCreate_InsertFailureAbortsTransaction(t *testing.T) {
	f := newServiceFixture()
	insertErr := errors.New("insert failed")
	f.repo.createErr = insertErr

	_, err := f.service.Create(context.Background(), validInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, insertErr)

	// The failure surfaced inside the transaction function, so the
	// manager would have rolled back: nothing may be persisted.
	require.Equal(t, 1, f.txManager.calls)
	assert.ErrorIs(t, f.txManager.lastErr, insertErr)
	assert.Empty(t, f.repo.created)
	assert.Empty(t, f.repo.savedLines)

	// The number allocated for the failed attempt is abandoned; the
	// next attempt gets a fresh one (gap, never a duplicate).
	require.Len(t, f.allocator.scopes, 1)
	f.repo.createErr = nil

	inv, err := f.service.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, int64(2), inv.Number)
}

func TestCreate_SaveLinesFailureAbortsTransaction(t *testing.T) {
	f := newServiceFixture()
	linesErr := errors.New("copy lines failed")
	f.repo.saveLinesErr = linesErr

	_, err := f.service.Create(context.Background(), validInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, linesErr)

	require.Equal(t, 1, f.txManager.calls)
	assert.ErrorIs(t, f.txManager.lastErr, linesErr)
	assert.Empty(t, f.repo.savedLines)

	f.repo.saveLinesErr = nil

	inv, err := f.service.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, int64(2), inv.Number)
	require.Len(t, f.repo.savedLines[inv.ID], 2)
}

func TestCreate_CompanyNotFound(t *testing.T) {
	f := newServiceFixture()

	in := validInput()
	in.CompanyID = 999

	_, err := f.service.Create(context.Background(), in)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, f.repo.created)
}

func TestCreate_ClientNotFound(t *testing.T) {
	f := newServiceFixture()

	in := validInput()
	in.ClientID = 999

	_, err := f.service.Create(context.Background(), in)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, f.repo.created)
}

func TestCreate_ClientFromAnotherCompany(t *testing.T) {
	f := newServiceFixture()

	in := validInput()
	in.ClientID = 20 // belongs to company 2

	_, err := f.service.Create(context.Background(), in)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Empty(t, f.repo.created)
	assert.Empty(t, f.allocator.scopes, "no number may be allocated for a rejected invoice")
}

func TestCreate_EmptyLinesRejected(t *testing.T) {
	f := newServiceFixture()

	in := validInput()
	in.Lines = nil

	_, err := f.service.Create(context.Background(), in)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Empty(t, f.allocator.scopes, "validation must precede allocation")
}

func TestCreate_InvalidLineRejected(t *testing.T) {
	f := newServiceFixture()

	tests := []struct {
		name   string
		mutate func(*LineInput)
	}{
		{"empty description", func(l *LineInput) { l.Description = "" }},
		{"zero quantity", func(l *LineInput) { l.Quantity = decimal.Zero }},
		{"negative price", func(l *LineInput) { l.UnitPrice = decimal.NewFromInt(-1) }},
		{"vat rate above 100", func(l *LineInput) { l.VATRate = decimal.NewFromInt(101) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in.Lines[0])

			_, err := f.service.Create(context.Background(), in)
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))
		})
	}
}

func TestCreate_IssueYearDrivesNumberingScope(t *testing.T) {
	f := newServiceFixture()

	in := validInput()
	in.IssueDate = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	_, err := f.service.Create(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, f.allocator.scopes, 1)
	assert.Equal(t, 2025, f.allocator.scopes[0].Year)
}

func TestCreate_ReturnedInvoiceHasNoLines(t *testing.T) {
	f := newServiceFixture()

	inv, err := f.service.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Empty(t, inv.Lines)
}

func TestGetByID_AttachesLinesInOrder(t *testing.T) {
	f := newServiceFixture()

	created, err := f.service.Create(context.Background(), validInput())
	require.NoError(t, err)

	inv, err := f.service.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, inv.Lines, 2)
	assert.Equal(t, 1, inv.Lines[0].LineNo)
	assert.Equal(t, 2, inv.Lines[1].LineNo)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.GetByID(context.Background(), 12345)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
