package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldMap(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	ve, ok := err.(*ValidationError)
	require.True(t, ok)
	return ve.FieldMap()
}

func TestEntryCreateRequest_Parse(t *testing.T) {
	valid := EntryCreateRequest{
		CustomerID: 1,
		EntryType:  EntryTypeCredit,
		Amount:     "100.50",
		Note:       "invoice 42",
		Date:       "2024-01-15",
	}

	t.Run("valid", func(t *testing.T) {
		v, err := valid.Parse()
		require.NoError(t, err)
		assert.Equal(t, EntryTypeCredit, v.EntryType)
		assert.Equal(t, "100.50", v.Amount.String())
		assert.Equal(t, "2024-01-15", v.Date.String())
		assert.Equal(t, "invoice 42", v.Note)
	})

	t.Run("everything missing", func(t *testing.T) {
		_, err := EntryCreateRequest{}.Parse()
		m := fieldMap(t, err)
		assert.Equal(t, "This field is required.", m["customer_id"])
		assert.Equal(t, "This field is required.", m["entry_type"])
		assert.Equal(t, "This field is required.", m["amount"])
		assert.Equal(t, "This field is required.", m["date"])
	})

	t.Run("bad type", func(t *testing.T) {
		p := valid
		p.EntryType = "transfer"
		_, err := p.Parse()
		assert.Equal(t, "Invalid type. Use 'credit' or 'debit'.", fieldMap(t, err)["entry_type"])
	})

	t.Run("bad amount", func(t *testing.T) {
		p := valid
		p.Amount = "12.345"
		_, err := p.Parse()
		assert.Equal(t, "Ensure that there are no more than 2 decimal places.", fieldMap(t, err)["amount"])
	})

	t.Run("bad date", func(t *testing.T) {
		p := valid
		p.Date = "15/01/2024"
		_, err := p.Parse()
		assert.Equal(t, "Invalid date format. Use YYYY-MM-DD.", fieldMap(t, err)["date"])
	})

	t.Run("note too long", func(t *testing.T) {
		p := valid
		p.Note = strings.Repeat("x", 256)
		_, err := p.Parse()
		assert.Equal(t, "Ensure this field has no more than 255 characters.", fieldMap(t, err)["note"])
	})

	t.Run("errors accumulate", func(t *testing.T) {
		p := EntryCreateRequest{CustomerID: 1, EntryType: "x", Amount: "y", Date: "z"}
		_, err := p.Parse()
		m := fieldMap(t, err)
		assert.Len(t, m, 3)
	})
}

func TestEntryUpdateRequest_Parse(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	t.Run("empty patch is valid", func(t *testing.T) {
		patch, err := EntryUpdateRequest{}.Parse()
		require.NoError(t, err)
		assert.Nil(t, patch.EntryType)
		assert.Nil(t, patch.Amount)
		assert.Nil(t, patch.Note)
		assert.Nil(t, patch.Date)
	})

	t.Run("partial fields", func(t *testing.T) {
		patch, err := EntryUpdateRequest{Amount: strPtr("25.50")}.Parse()
		require.NoError(t, err)
		require.NotNil(t, patch.Amount)
		assert.Equal(t, "25.50", patch.Amount.String())
		assert.Nil(t, patch.Date)
	})

	t.Run("invalid fields fail", func(t *testing.T) {
		_, err := EntryUpdateRequest{EntryType: strPtr("wire")}.Parse()
		assert.Equal(t, "Invalid type. Use 'credit' or 'debit'.", fieldMap(t, err)["entry_type"])

		_, err = EntryUpdateRequest{Date: strPtr("2024-13-01")}.Parse()
		assert.Equal(t, "Invalid date format. Use YYYY-MM-DD.", fieldMap(t, err)["date"])
	})
}

func TestParseEntryFilter(t *testing.T) {
	t.Run("empty params impose nothing", func(t *testing.T) {
		f, err := ParseEntryFilter("", "", "")
		require.NoError(t, err)
		assert.Nil(t, f.Type)
		assert.Nil(t, f.StartDate)
		assert.Nil(t, f.EndDate)
	})

	t.Run("all params", func(t *testing.T) {
		f, err := ParseEntryFilter("debit", "2024-01-01", "2024-01-31")
		require.NoError(t, err)
		require.NotNil(t, f.Type)
		assert.Equal(t, EntryTypeDebit, *f.Type)
		assert.Equal(t, "2024-01-01", f.StartDate.String())
		assert.Equal(t, "2024-01-31", f.EndDate.String())
	})

	t.Run("bad type", func(t *testing.T) {
		_, err := ParseEntryFilter("both", "", "")
		assert.Equal(t, "Invalid type. Use 'credit' or 'debit'.", fieldMap(t, err)["type"])
	})

	t.Run("bad dates report their own fields", func(t *testing.T) {
		_, err := ParseEntryFilter("", "bad", "worse")
		m := fieldMap(t, err)
		assert.Equal(t, "Invalid date format. Use YYYY-MM-DD.", m["start_date"])
		assert.Equal(t, "Invalid date format. Use YYYY-MM-DD.", m["end_date"])
	})
}

func TestNewSummary(t *testing.T) {
	credit, err := ParseAmount("150.50", "amount")
	require.NoError(t, err)
	debit, err := ParseAmount("30.25", "amount")
	require.NoError(t, err)

	s := NewSummary(credit, debit)
	assert.Equal(t, "150.50", s.TotalCredit)
	assert.Equal(t, "30.25", s.TotalDebit)
	assert.Equal(t, "120.25", s.Balance)

	empty := NewSummary(MoneyZero(), MoneyZero())
	assert.Equal(t, "0.00", empty.Balance)

	negative := NewSummary(debit, credit)
	assert.Equal(t, "-120.25", negative.Balance)
}
