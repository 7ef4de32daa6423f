package model

import (
	"time"
	"unicode/utf8"
)

const (
	EntryTypeCredit = "credit"
	EntryTypeDebit  = "debit"
)

// LedgerEntry records a single credit or debit against a customer. The
// entry's owner always matches the owning customer's owner.
type LedgerEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Customer  *Customer `json:"customer"`
	EntryType string    `json:"entry_type"`
	Amount    Money     `json:"amount"`
	Note      string    `json:"note"`
	Date      Date      `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

const maxNoteLen = 255

// EntryValues are the typed, validated fields of an entry write.
type EntryValues struct {
	EntryType string
	Amount    Money
	Note      string
	Date      Date
}

// EntryCreateRequest is the raw input for creating an entry. Amount and
// Date stay strings until Parse validates them.
type EntryCreateRequest struct {
	CustomerID int64
	EntryType  string
	Amount     string
	Note       string
	Date       string
}

func (p EntryCreateRequest) Parse() (EntryValues, error) {
	ve := &ValidationError{}
	var v EntryValues

	if p.CustomerID == 0 {
		ve.Add("customer_id", "This field is required.")
	}

	switch p.EntryType {
	case "":
		ve.Add("entry_type", "This field is required.")
	case EntryTypeCredit, EntryTypeDebit:
		v.EntryType = p.EntryType
	default:
		ve.Add("entry_type", "Invalid type. Use 'credit' or 'debit'.")
	}

	if p.Amount == "" {
		ve.Add("amount", "This field is required.")
	} else if amount, err := ParseAmount(p.Amount, "amount"); err != nil {
		ve.Merge(err)
	} else {
		v.Amount = amount
	}

	if p.Date == "" {
		ve.Add("date", "This field is required.")
	} else if date, err := ParseDate(p.Date, "date"); err != nil {
		ve.Merge(err)
	} else {
		v.Date = date
	}

	if utf8.RuneCountInString(p.Note) > maxNoteLen {
		ve.Add("note", "Ensure this field has no more than 255 characters.")
	} else {
		v.Note = p.Note
	}

	return v, ve.Err()
}

// EntryPatch is a partial entry update; nil means "leave as is". There is
// no customer field on purpose: an entry cannot move between customers.
type EntryPatch struct {
	EntryType *string
	Amount    *Money
	Note      *string
	Date      *Date
}

// EntryUpdateRequest is the raw input for a partial update.
type EntryUpdateRequest struct {
	EntryType *string
	Amount    *string
	Note      *string
	Date      *string
}

func (p EntryUpdateRequest) Parse() (EntryPatch, error) {
	ve := &ValidationError{}
	var patch EntryPatch

	if p.EntryType != nil {
		switch *p.EntryType {
		case EntryTypeCredit, EntryTypeDebit:
			patch.EntryType = p.EntryType
		default:
			ve.Add("entry_type", "Invalid type. Use 'credit' or 'debit'.")
		}
	}

	if p.Amount != nil {
		if amount, err := ParseAmount(*p.Amount, "amount"); err != nil {
			ve.Merge(err)
		} else {
			patch.Amount = &amount
		}
	}

	if p.Date != nil {
		if date, err := ParseDate(*p.Date, "date"); err != nil {
			ve.Merge(err)
		} else {
			patch.Date = &date
		}
	}

	if p.Note != nil {
		if utf8.RuneCountInString(*p.Note) > maxNoteLen {
			ve.Add("note", "Ensure this field has no more than 255 characters.")
		} else {
			patch.Note = p.Note
		}
	}

	return patch, ve.Err()
}

// EntryFilter narrows entry listings. Absent fields impose no constraint;
// the predicates are conjunctive and order-independent.
type EntryFilter struct {
	Type      *string
	StartDate *Date
	EndDate   *Date
}

// ParseEntryFilter builds a filter from raw query parameters.
// Supported params:
//   - type=credit|debit
//   - start_date=YYYY-MM-DD (inclusive)
//   - end_date=YYYY-MM-DD (inclusive)
func ParseEntryFilter(entryType, startDate, endDate string) (EntryFilter, error) {
	ve := &ValidationError{}
	var f EntryFilter

	if entryType != "" {
		switch entryType {
		case EntryTypeCredit, EntryTypeDebit:
			f.Type = &entryType
		default:
			ve.Add("type", "Invalid type. Use 'credit' or 'debit'.")
		}
	}

	if startDate != "" {
		if d, err := ParseDate(startDate, "start_date"); err != nil {
			ve.Merge(err)
		} else {
			f.StartDate = &d
		}
	}

	if endDate != "" {
		if d, err := ParseDate(endDate, "end_date"); err != nil {
			ve.Merge(err)
		} else {
			f.EndDate = &d
		}
	}

	return f, ve.Err()
}

// Summary is the per-customer balance rollup. All amounts are formatted
// with exactly two fractional digits.
type Summary struct {
	TotalCredit string `json:"total_credit"`
	TotalDebit  string `json:"total_debit"`
	Balance     string `json:"balance"`
}

func NewSummary(totalCredit, totalDebit Money) Summary {
	return Summary{
		TotalCredit: totalCredit.StringFixed(2),
		TotalDebit:  totalDebit.StringFixed(2),
		Balance:     totalCredit.Sub(totalDebit).StringFixed(2),
	}
}
