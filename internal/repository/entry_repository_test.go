package repository

import (
	"context"
	"testing"

	"github.com/finbook/bookkeeper/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntryRepository(db.DB)
	ctx := context.Background()

	customer := seedCustomer(t, db, 1, "Acme")

	created, err := repo.Create(ctx, &model.LedgerEntry{
		UserID:    1,
		Customer:  &model.Customer{ID: customer.ID},
		EntryType: model.EntryTypeCredit,
		Amount:    mustAmount(t, "100.00"),
		Note:      "invoice 1",
		Date:      mustDate(t, "2024-01-15"),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "100.00", created.Amount.String())

	// the owning customer comes back preloaded
	require.NotNil(t, created.Customer)
	assert.Equal(t, "Acme", created.Customer.Name)
}

func TestEntryRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntryRepository(db.DB)
	ctx := context.Background()

	customer := seedCustomer(t, db, 1, "Acme")
	other := seedCustomer(t, db, 2, "Foreign")

	older := seedEntry(t, db, 1, customer.ID, model.EntryTypeCredit, "10.00", "2024-01-10")
	newer := seedEntry(t, db, 1, customer.ID, model.EntryTypeDebit, "20.00", "2024-02-10")
	seedEntry(t, db, 2, other.ID, model.EntryTypeCredit, "99.00", "2024-02-10")

	t.Run("newest date first, scoped to owner", func(t *testing.T) {
		entries, err := repo.List(ctx, 1, model.EntryFilter{})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, newer.ID, entries[0].ID)
		assert.Equal(t, older.ID, entries[1].ID)
	})

	t.Run("type filter", func(t *testing.T) {
		credit := model.EntryTypeCredit
		entries, err := repo.List(ctx, 1, model.EntryFilter{Type: &credit})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, older.ID, entries[0].ID)
	})

	t.Run("date range boundaries are inclusive", func(t *testing.T) {
		start := mustDate(t, "2024-01-10")
		end := mustDate(t, "2024-01-31")
		entries, err := repo.List(ctx, 1, model.EntryFilter{StartDate: &start, EndDate: &end})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, older.ID, entries[0].ID)
	})

	t.Run("range excludes dates past the end", func(t *testing.T) {
		end := mustDate(t, "2024-02-09")
		entries, err := repo.List(ctx, 1, model.EntryFilter{EndDate: &end})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, older.ID, entries[0].ID)
	})

	t.Run("combined filters intersect", func(t *testing.T) {
		debit := model.EntryTypeDebit
		start := mustDate(t, "2024-01-01")
		end := mustDate(t, "2024-12-31")
		entries, err := repo.List(ctx, 1, model.EntryFilter{Type: &debit, StartDate: &start, EndDate: &end})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, newer.ID, entries[0].ID)
	})
}

func TestEntryRepository_ListForCustomer(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntryRepository(db.DB)
	ctx := context.Background()

	a := seedCustomer(t, db, 1, "A")
	b := seedCustomer(t, db, 1, "B")

	wanted := seedEntry(t, db, 1, a.ID, model.EntryTypeCredit, "10.00", "2024-01-10")
	seedEntry(t, db, 1, b.ID, model.EntryTypeCredit, "20.00", "2024-01-11")

	entries, err := repo.ListForCustomer(ctx, a.ID, 1, model.EntryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, wanted.ID, entries[0].ID)
}

func TestEntryRepository_Get(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntryRepository(db.DB)
	ctx := context.Background()

	customer := seedCustomer(t, db, 1, "Acme")
	entry := seedEntry(t, db, 1, customer.ID, model.EntryTypeCredit, "10.00", "2024-01-10")

	t.Run("found", func(t *testing.T) {
		got, err := repo.Get(ctx, entry.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, "10.00", got.Amount.String())
		assert.Equal(t, "2024-01-10", got.Date.String())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.Get(ctx, 999, 1)
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})

	t.Run("owned by someone else", func(t *testing.T) {
		_, err := repo.Get(ctx, entry.ID, 2)
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})
}

func TestEntryRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntryRepository(db.DB)
	ctx := context.Background()

	customer := seedCustomer(t, db, 1, "Acme")

	t.Run("applies present fields only", func(t *testing.T) {
		entry := seedEntry(t, db, 1, customer.ID, model.EntryTypeCredit, "10.00", "2024-01-10")
		amount := mustAmount(t, "25.50")

		updated, err := repo.Update(ctx, entry.ID, 1, model.EntryPatch{Amount: &amount})
		require.NoError(t, err)
		assert.Equal(t, "25.50", updated.Amount.String())
		assert.Equal(t, model.EntryTypeCredit, updated.EntryType)
		assert.Equal(t, "2024-01-10", updated.Date.String())
	})

	t.Run("not found", func(t *testing.T) {
		note := "x"
		_, err := repo.Update(ctx, 999, 1, model.EntryPatch{Note: &note})
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})

	t.Run("owned by someone else", func(t *testing.T) {
		entry := seedEntry(t, db, 1, customer.ID, model.EntryTypeCredit, "10.00", "2024-01-10")
		note := "x"
		_, err := repo.Update(ctx, entry.ID, 2, model.EntryPatch{Note: &note})
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})
}

func TestEntryRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntryRepository(db.DB)
	ctx := context.Background()

	customer := seedCustomer(t, db, 1, "Acme")

	t.Run("deletes owned entry", func(t *testing.T) {
		entry := seedEntry(t, db, 1, customer.ID, model.EntryTypeCredit, "10.00", "2024-01-10")
		err := repo.Delete(ctx, entry.ID, 1)
		require.NoError(t, err)

		_, err = repo.Get(ctx, entry.ID, 1)
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})

	t.Run("not found", func(t *testing.T) {
		err := repo.Delete(ctx, 999, 1)
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})

	t.Run("owned by someone else", func(t *testing.T) {
		entry := seedEntry(t, db, 1, customer.ID, model.EntryTypeCredit, "10.00", "2024-01-10")
		err := repo.Delete(ctx, entry.ID, 2)
		assert.ErrorIs(t, err, ErrEntryNotFound)

		_, err = repo.Get(ctx, entry.ID, 1)
		assert.NoError(t, err)
	})
}

func TestEntryRepository_SumByType(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntryRepository(db.DB)
	ctx := context.Background()

	customer := seedCustomer(t, db, 1, "Acme")
	other := seedCustomer(t, db, 1, "Other")

	t.Run("no entries sums to zero", func(t *testing.T) {
		credit, debit, err := repo.SumByType(ctx, customer.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, "0.00", credit.String())
		assert.Equal(t, "0.00", debit.String())
	})

	t.Run("sums exactly per type", func(t *testing.T) {
		seedEntry(t, db, 1, customer.ID, model.EntryTypeCredit, "100.00", "2024-01-01")
		seedEntry(t, db, 1, customer.ID, model.EntryTypeCredit, "50.50", "2024-01-02")
		seedEntry(t, db, 1, customer.ID, model.EntryTypeDebit, "30.25", "2024-01-03")
		seedEntry(t, db, 1, other.ID, model.EntryTypeCredit, "999.00", "2024-01-04")

		credit, debit, err := repo.SumByType(ctx, customer.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, "150.50", credit.String())
		assert.Equal(t, "30.25", debit.String())
	})

	t.Run("scoped to the owning user", func(t *testing.T) {
		credit, debit, err := repo.SumByType(ctx, customer.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, "0.00", credit.String())
		assert.Equal(t, "0.00", debit.String())
	})
}
