// Package sqlite is a gorm-backed WorkflowStore for single-node deployments
// and the iwactl tool.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/invoice_workflow_app/internal/apperrors"
	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_workflow_app/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_workflow_app/internal/models"
	"github.com/SscSPs/invoice_workflow_app/internal/utils/mapping"
	"gorm.io/gorm"
)

// GormWorkflowStore keeps the workflow collections in a gorm database.
type GormWorkflowStore struct {
	db *gorm.DB
}

// NewWorkflowStore creates a store on db.
func NewWorkflowStore(db *gorm.DB) *GormWorkflowStore {
	return &GormWorkflowStore{db: db}
}

var _ portsrepo.WorkflowStoreWithTx = (*GormWorkflowStore)(nil)

// AutoMigrate creates or updates the tables.
func (r *GormWorkflowStore) AutoMigrate() error {
	if err := r.db.AutoMigrate(&models.Invoice{}, &models.Payment{}, &models.InvoiceApproval{}); err != nil {
		return apperrors.NewPersistenceError("failed to migrate sqlite schema", err)
	}
	return nil
}

// WithinTx runs fn inside one gorm transaction.
func (r *GormWorkflowStore) WithinTx(ctx context.Context, fn func(ctx context.Context, store portsrepo.WorkflowStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &GormWorkflowStore{db: tx})
	})
}

// nextSeq returns the next insertion position of the model's table.
func nextSeq(tx *gorm.DB, model any) (int64, error) {
	var maxSeq sql.NullInt64
	if err := tx.Model(model).Select("MAX(seq)").Scan(&maxSeq).Error; err != nil {
		return 0, err
	}
	return maxSeq.Int64 + 1, nil
}

func (r *GormWorkflowStore) LoadInvoices(ctx context.Context) ([]domain.Invoice, error) {
	var rows []models.Invoice
	if err := r.db.WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, apperrors.NewPersistenceError("failed to query invoices", err)
	}
	invoices := make([]domain.Invoice, 0, len(rows))
	for _, row := range rows {
		inv, err := mapping.ToDomainInvoice(row)
		if err != nil {
			return nil, apperrors.NewPersistenceError("failed to decode invoice", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func (r *GormWorkflowStore) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	var row models.Invoice
	err := r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
		}
		return nil, apperrors.NewPersistenceError("failed to find invoice "+invoiceID, err)
	}
	inv, err := mapping.ToDomainInvoice(row)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to decode invoice", err)
	}
	return &inv, nil
}

func (r *GormWorkflowStore) SaveInvoices(ctx context.Context, invoices []domain.Invoice) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, inv := range invoices {
			m, err := mapping.ToModelInvoice(inv, 0)
			if err != nil {
				return err
			}
			var count int64
			if err := tx.Model(&models.Invoice{}).Where("invoice_id = ?", m.InvoiceID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				err = tx.Model(&models.Invoice{}).Where("invoice_id = ?", m.InvoiceID).Updates(map[string]any{
					"status":       m.Status,
					"submitted_by": m.SubmittedBy,
					"amount":       m.Amount,
					"document":     m.Document,
					"updated_at":   m.UpdatedAt,
				}).Error
				if err != nil {
					return err
				}
				continue
			}
			if m.Seq, err = nextSeq(tx, &models.Invoice{}); err != nil {
				return err
			}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.NewPersistenceError("failed to save invoices", err)
	}
	return nil
}

func (r *GormWorkflowStore) LoadPayments(ctx context.Context) ([]domain.Payment, error) {
	var rows []models.Payment
	if err := r.db.WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, apperrors.NewPersistenceError("failed to query payments", err)
	}
	payments := make([]domain.Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, mapping.ToDomainPayment(row))
	}
	return payments, nil
}

func (r *GormWorkflowStore) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	var row models.Payment
	err := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
		}
		return nil, apperrors.NewPersistenceError("failed to find payment "+paymentID, err)
	}
	p := mapping.ToDomainPayment(row)
	return &p, nil
}

func (r *GormWorkflowStore) SavePayments(ctx context.Context, payments []domain.Payment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range payments {
			m := mapping.ToModelPayment(p, 0)
			var count int64
			if err := tx.Model(&models.Payment{}).Where("payment_id = ?", m.PaymentID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				err := tx.Model(&models.Payment{}).Where("payment_id = ?", m.PaymentID).Updates(map[string]any{
					"invoice_number": m.InvoiceNumber,
					"amount":         m.Amount,
					"payment_date":   m.PaymentDate,
					"status":         m.Status,
					"bank_reference": m.BankReference,
					"confirmed_by":   m.ConfirmedBy,
					"notes":          m.Notes,
				}).Error
				if err != nil {
					return err
				}
				continue
			}
			seq, err := nextSeq(tx, &models.Payment{})
			if err != nil {
				return err
			}
			m.Seq = seq
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.NewPersistenceError("failed to save payments", err)
	}
	return nil
}

func (r *GormWorkflowStore) LoadApprovals(ctx context.Context) ([]domain.InvoiceApproval, error) {
	return r.findApprovals(ctx, r.db.WithContext(ctx))
}

func (r *GormWorkflowStore) FindApprovalsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceApproval, error) {
	return r.findApprovals(ctx, r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID))
}

func (r *GormWorkflowStore) findApprovals(_ context.Context, q *gorm.DB) ([]domain.InvoiceApproval, error) {
	var rows []models.InvoiceApproval
	if err := q.Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, apperrors.NewPersistenceError("failed to query approvals", err)
	}
	approvals := make([]domain.InvoiceApproval, 0, len(rows))
	for _, row := range rows {
		approvals = append(approvals, mapping.ToDomainApproval(row))
	}
	return approvals, nil
}

// SaveApprovals appends ledger rows; rows already stored are left untouched.
func (r *GormWorkflowStore) SaveApprovals(ctx context.Context, approvals []domain.InvoiceApproval) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, a := range approvals {
			var count int64
			if err := tx.Model(&models.InvoiceApproval{}).Where("approval_id = ?", a.ID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			seq, err := nextSeq(tx, &models.InvoiceApproval{})
			if err != nil {
				return err
			}
			m := mapping.ToModelApproval(a, seq)
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.NewPersistenceError("failed to save approvals", err)
	}
	return nil
}
