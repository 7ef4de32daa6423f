package repository

import (
	"time"

	"github.com/finbook/bookkeeper/internal/model"
)

type EntryEntity struct {
	ID         int64           `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	UserID     int64           `db:"user_id"     gorm:"column:user_id;not null;index"`
	CustomerID int64           `db:"customer_id" gorm:"column:customer_id;not null;index"`
	Customer   *CustomerEntity `gorm:"foreignKey:CustomerID;references:ID;constraint:OnDelete:CASCADE"`
	EntryType  string          `db:"entry_type"  gorm:"column:entry_type;size:6;not null;index"`
	Amount     model.Money     `db:"amount"      gorm:"column:amount;type:numeric(12,2);not null"`
	Note       string          `db:"note"        gorm:"column:note;size:255"`
	Date       model.Date      `db:"date"        gorm:"column:date;type:date;not null;index"`
	CreatedAt  time.Time       `db:"created_at"  gorm:"column:created_at;autoCreateTime"`
}

func (EntryEntity) TableName() string {
	return "ledger_entries"
}

func toEntryEntity(m *model.LedgerEntry) *EntryEntity {
	if m == nil {
		return nil
	}
	e := &EntryEntity{
		ID:        m.ID,
		UserID:    m.UserID,
		EntryType: m.EntryType,
		Amount:    m.Amount,
		Note:      m.Note,
		Date:      m.Date,
		CreatedAt: m.CreatedAt,
	}
	if m.Customer != nil {
		e.CustomerID = m.Customer.ID
	}
	return e
}

func toEntryModel(e *EntryEntity) *model.LedgerEntry {
	if e == nil {
		return nil
	}
	m := &model.LedgerEntry{
		ID:        e.ID,
		UserID:    e.UserID,
		EntryType: e.EntryType,
		Amount:    e.Amount,
		Note:      e.Note,
		Date:      e.Date,
		CreatedAt: e.CreatedAt,
	}
	if e.Customer != nil {
		m.Customer = toCustomerModel(e.Customer)
	} else {
		m.Customer = &model.Customer{ID: e.CustomerID}
	}
	return m
}

func toEntryModels(entities []*EntryEntity) []*model.LedgerEntry {
	if entities == nil {
		return nil
	}
	models := make([]*model.LedgerEntry, len(entities))
	for i, e := range entities {
		models[i] = toEntryModel(e)
	}
	return models
}
