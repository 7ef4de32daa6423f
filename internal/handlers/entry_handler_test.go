package handlers

import (
	"context"
	"testing"

	"github.com/finbook/bookkeeper/internal/model"
	"github.com/finbook/bookkeeper/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) List(ctx context.Context, userID int64, f model.EntryFilter) ([]*model.LedgerEntry, error) {
	args := m.Called(ctx, userID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) ListForCustomer(ctx context.Context, customerID, userID int64, f model.EntryFilter) ([]*model.LedgerEntry, error) {
	args := m.Called(ctx, customerID, userID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) Create(ctx context.Context, userID int64, p model.EntryCreateRequest) (*model.LedgerEntry, error) {
	args := m.Called(ctx, userID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) Get(ctx context.Context, id, userID int64) (*model.LedgerEntry, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) Update(ctx context.Context, id, userID int64, p model.EntryUpdateRequest) (*model.LedgerEntry, error) {
	args := m.Called(ctx, id, userID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) Delete(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockLedgerService) Summarize(ctx context.Context, customerID, userID int64) (model.Summary, error) {
	args := m.Called(ctx, customerID, userID)
	return args.Get(0).(model.Summary), args.Error(1)
}

func TestEntryHandler_List(t *testing.T) {
	t.Run("filter from query params", func(t *testing.T) {
		svc := new(MockLedgerService)
		h := NewEntryHandler(svc)
		ctx := authedCtx(1)
		ctx.Request.SetRequestURI("/api/v1/entries?type=credit&start_date=2024-01-01&end_date=2024-01-31")

		svc.On("List", mock.Anything, int64(1), mock.MatchedBy(func(f model.EntryFilter) bool {
			return f.Type != nil && *f.Type == model.EntryTypeCredit &&
				f.StartDate != nil && f.StartDate.String() == "2024-01-01" &&
				f.EndDate != nil && f.EndDate.String() == "2024-01-31"
		})).Return([]*model.LedgerEntry{}, nil)

		h.ListEntries(ctx)
		assert.Equal(t, 200, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("bad filter params", func(t *testing.T) {
		svc := new(MockLedgerService)
		h := NewEntryHandler(svc)
		ctx := authedCtx(1)
		ctx.Request.SetRequestURI("/api/v1/entries?type=transfer")

		h.ListEntries(ctx)
		assert.Equal(t, 400, ctx.Response.StatusCode())
		assert.JSONEq(t, `{"errors":{"type":"Invalid type. Use 'credit' or 'debit'."}}`, string(ctx.Response.Body()))
		svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty result is a JSON array", func(t *testing.T) {
		svc := new(MockLedgerService)
		h := NewEntryHandler(svc)
		ctx := authedCtx(1)

		svc.On("List", mock.Anything, int64(1), model.EntryFilter{}).Return(nil, nil)

		h.ListEntries(ctx)
		assert.JSONEq(t, "[]", string(ctx.Response.Body()))
	})
}

func TestEntryHandler_Create(t *testing.T) {
	t.Run("string amount", func(t *testing.T) {
		svc := new(MockLedgerService)
		h := NewEntryHandler(svc)
		ctx := authedCtx(1)
		ctx.Request.SetBody([]byte(`{"customer_id":7,"entry_type":"credit","amount":"100.50","date":"2024-01-15"}`))

		svc.On("Create", mock.Anything, int64(1), model.EntryCreateRequest{
			CustomerID: 7,
			EntryType:  "credit",
			Amount:     "100.50",
			Date:       "2024-01-15",
		}).Return(&model.LedgerEntry{ID: 3}, nil)

		h.CreateEntry(ctx)
		assert.Equal(t, 201, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("numeric amount", func(t *testing.T) {
		svc := new(MockLedgerService)
		h := NewEntryHandler(svc)
		ctx := authedCtx(1)
		ctx.Request.SetBody([]byte(`{"customer_id":7,"entry_type":"debit","amount":30.25,"date":"2024-01-15"}`))

		svc.On("Create", mock.Anything, int64(1), mock.MatchedBy(func(p model.EntryCreateRequest) bool {
			return p.Amount == "30.25"
		})).Return(&model.LedgerEntry{ID: 4}, nil)

		h.CreateEntry(ctx)
		assert.Equal(t, 201, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("ownership failure surfaces on the field", func(t *testing.T) {
		svc := new(MockLedgerService)
		h := NewEntryHandler(svc)
		ctx := authedCtx(1)
		ctx.Request.SetBody([]byte(`{"customer_id":99,"entry_type":"credit","amount":"1.00","date":"2024-01-15"}`))

		svc.On("Create", mock.Anything, int64(1), mock.Anything).
			Return(nil, model.NewFieldError("customer_id", "Customer not found."))

		h.CreateEntry(ctx)
		assert.Equal(t, 400, ctx.Response.StatusCode())
		assert.JSONEq(t, `{"errors":{"customer_id":"Customer not found."}}`, string(ctx.Response.Body()))
	})
}

func TestEntryHandler_Update(t *testing.T) {
	t.Run("customer_id in the body is ignored", func(t *testing.T) {
		svc := new(MockLedgerService)
		h := NewEntryHandler(svc)
		ctx := authedCtx(1)
		ctx.SetUserValue("id", "3")
		ctx.Request.SetBody([]byte(`{"customer_id":99,"amount":"25.50"}`))

		amount := "25.50"
		svc.On("Update", mock.Anything, int64(3), int64(1), model.EntryUpdateRequest{Amount: &amount}).
			Return(&model.LedgerEntry{ID: 3}, nil)

		h.UpdateEntry(ctx)
		assert.Equal(t, 200, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(MockLedgerService)
		h := NewEntryHandler(svc)
		ctx := authedCtx(1)
		ctx.SetUserValue("id", "999")
		ctx.Request.SetBody([]byte(`{"note":"x"}`))

		svc.On("Update", mock.Anything, int64(999), int64(1), mock.Anything).
			Return(nil, repository.ErrEntryNotFound)

		h.UpdateEntry(ctx)
		assert.Equal(t, 404, ctx.Response.StatusCode())
		assert.JSONEq(t, `{"error":"Not found."}`, string(ctx.Response.Body()))
	})
}

func TestEntryHandler_Delete(t *testing.T) {
	svc := new(MockLedgerService)
	h := NewEntryHandler(svc)
	ctx := authedCtx(1)
	ctx.SetUserValue("id", "3")

	svc.On("Delete", mock.Anything, int64(3), int64(1)).Return(nil)

	h.DeleteEntry(ctx)
	assert.Equal(t, 204, ctx.Response.StatusCode())
}

func TestEntryHandler_ListCustomerEntries(t *testing.T) {
	t.Run("scoped listing", func(t *testing.T) {
		svc := new(MockLedgerService)
		h := NewEntryHandler(svc)
		ctx := authedCtx(1)
		ctx.SetUserValue("id", "7")

		svc.On("ListForCustomer", mock.Anything, int64(7), int64(1), model.EntryFilter{}).
			Return([]*model.LedgerEntry{{ID: 1}}, nil)

		h.ListCustomerEntries(ctx)
		assert.Equal(t, 200, ctx.Response.StatusCode())
	})

	t.Run("foreign customer is a 404", func(t *testing.T) {
		svc := new(MockLedgerService)
		h := NewEntryHandler(svc)
		ctx := authedCtx(2)
		ctx.SetUserValue("id", "7")

		svc.On("ListForCustomer", mock.Anything, int64(7), int64(2), model.EntryFilter{}).
			Return(nil, repository.ErrCustomerNotFound)

		h.ListCustomerEntries(ctx)
		assert.Equal(t, 404, ctx.Response.StatusCode())
	})
}

func TestEntryHandler_GetCustomerSummary(t *testing.T) {
	svc := new(MockLedgerService)
	h := NewEntryHandler(svc)
	ctx := authedCtx(1)
	ctx.SetUserValue("id", "7")

	svc.On("Summarize", mock.Anything, int64(7), int64(1)).
		Return(model.Summary{TotalCredit: "150.50", TotalDebit: "30.25", Balance: "120.25"}, nil)

	h.GetCustomerSummary(ctx)
	require.Equal(t, 200, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"total_credit":"150.50","total_debit":"30.25","balance":"120.25"}`, string(ctx.Response.Body()))
}
