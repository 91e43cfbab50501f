package models

import (
	"github.com/shopspring/decimal"
)

// Invoice is the stored form of an invoice. The columns used for lookups are
// kept flat; the complete invoice, including line items and the group-billing
// snapshot, lives in Document as JSON.
// Amounts are stored as text in SQLite so decimals round-trip exactly.
type Invoice struct {
	Seq         int64           `gorm:"column:seq;not null;index"`
	InvoiceID   string          `gorm:"column:invoice_id;primaryKey"`
	Status      string          `gorm:"column:status;not null;index"`
	SubmittedBy string          `gorm:"column:submitted_by;not null;index"`
	Amount      decimal.Decimal `gorm:"column:amount;type:text;not null"`
	Document    []byte          `gorm:"column:document;not null"`
	AuditFields
}

// TableName pins the table name shared with the SQL migrations.
func (Invoice) TableName() string { return "invoices" }

// Payment is the stored form of a payment.
type Payment struct {
	Seq           int64           `gorm:"column:seq;not null;index"`
	PaymentID     string          `gorm:"column:payment_id;primaryKey"`
	InvoiceID     string          `gorm:"column:invoice_id;not null;index"`
	InvoiceNumber string          `gorm:"column:invoice_number"`
	Amount        decimal.Decimal `gorm:"column:amount;type:text;not null"`
	PaymentDate   string          `gorm:"column:payment_date;not null"`
	Status        string          `gorm:"column:status;not null"`
	BankReference string          `gorm:"column:bank_reference"`
	ConfirmedBy   string          `gorm:"column:confirmed_by"`
	Notes         string          `gorm:"column:notes"`
	AuditFields
}

func (Payment) TableName() string { return "payments" }

// InvoiceApproval is one stored ledger row. Rows are inserted once and never updated.
type InvoiceApproval struct {
	Seq          int64  `gorm:"column:seq;not null;index"`
	ApprovalID   string `gorm:"column:approval_id;primaryKey"`
	InvoiceID    string `gorm:"column:invoice_id;not null;index"`
	ApproverID   string `gorm:"column:approver_id;not null"`
	ApproverName string `gorm:"column:approver_name"`
	Action       string `gorm:"column:action;not null"`
	Notes        string `gorm:"column:notes"`
	AuditFields
}

func (InvoiceApproval) TableName() string { return "invoice_approvals" }
