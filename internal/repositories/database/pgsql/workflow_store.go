package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/invoice_workflow_app/internal/apperrors"
	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_workflow_app/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_workflow_app/internal/models"
	"github.com/SscSPs/invoice_workflow_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxWorkflowStore keeps invoices, payments and the approval ledger in PostgreSQL.
type PgxWorkflowStore struct {
	BaseRepository
	q querier
}

// NewWorkflowStore creates a store on the pool.
func NewWorkflowStore(pool *pgxpool.Pool) *PgxWorkflowStore {
	return &PgxWorkflowStore{BaseRepository: BaseRepository{Pool: pool}, q: pool}
}

var _ portsrepo.WorkflowStoreWithTx = (*PgxWorkflowStore)(nil)

// WithinTx runs fn inside one database transaction.
func (r *PgxWorkflowStore) WithinTx(ctx context.Context, fn func(ctx context.Context, store portsrepo.WorkflowStore) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once committed

	txStore := &PgxWorkflowStore{BaseRepository: r.BaseRepository, q: tx}
	if err := fn(ctx, txStore); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

const invoiceColumns = `seq, invoice_id, status, submitted_by, amount, document, created_at, updated_at`

func scanInvoice(row pgx.Row) (domain.Invoice, error) {
	var m models.Invoice
	if err := row.Scan(&m.Seq, &m.InvoiceID, &m.Status, &m.SubmittedBy, &m.Amount, &m.Document, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return domain.Invoice{}, err
	}
	return mapping.ToDomainInvoice(m)
}

func (r *PgxWorkflowStore) LoadInvoices(ctx context.Context) ([]domain.Invoice, error) {
	rows, err := r.q.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY seq ASC;`)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query invoices", err)
	}
	defer rows.Close()

	invoices := make([]domain.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, apperrors.NewPersistenceError("failed to scan invoice", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("error iterating invoices", err)
	}
	return invoices, nil
}

func (r *PgxWorkflowStore) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	row := r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_id = $1;`, invoiceID)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
		}
		return nil, apperrors.NewPersistenceError("failed to find invoice "+invoiceID, err)
	}
	return &inv, nil
}

// SaveInvoices upserts by invoice_id. New rows take the next sequence number
// so load order stays insertion order.
func (r *PgxWorkflowStore) SaveInvoices(ctx context.Context, invoices []domain.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	query := `
		INSERT INTO invoices (invoice_id, status, submitted_by, amount, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (invoice_id) DO UPDATE SET
			status = EXCLUDED.status,
			submitted_by = EXCLUDED.submitted_by,
			amount = EXCLUDED.amount,
			document = EXCLUDED.document,
			updated_at = EXCLUDED.updated_at;
	`
	batch := &pgx.Batch{}
	for _, inv := range invoices {
		m, err := mapping.ToModelInvoice(inv, 0)
		if err != nil {
			return apperrors.NewPersistenceError("failed to encode invoice", err)
		}
		batch.Queue(query, m.InvoiceID, m.Status, m.SubmittedBy, m.Amount, m.Document, m.CreatedAt, m.UpdatedAt)
	}
	if err := r.q.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewPersistenceError("failed to save invoices", err)
	}
	return nil
}

const paymentColumns = `seq, payment_id, invoice_id, invoice_number, amount, payment_date, status, bank_reference, confirmed_by, notes, created_at, updated_at`

func scanPayment(row pgx.Row) (domain.Payment, error) {
	var m models.Payment
	err := row.Scan(&m.Seq, &m.PaymentID, &m.InvoiceID, &m.InvoiceNumber, &m.Amount, &m.PaymentDate,
		&m.Status, &m.BankReference, &m.ConfirmedBy, &m.Notes, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return domain.Payment{}, err
	}
	return mapping.ToDomainPayment(m), nil
}

func (r *PgxWorkflowStore) LoadPayments(ctx context.Context) ([]domain.Payment, error) {
	rows, err := r.q.Query(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY seq ASC;`)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query payments", err)
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, apperrors.NewPersistenceError("failed to scan payment", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("error iterating payments", err)
	}
	return payments, nil
}

func (r *PgxWorkflowStore) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE payment_id = $1;`, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
		}
		return nil, apperrors.NewPersistenceError("failed to find payment "+paymentID, err)
	}
	return &p, nil
}

func (r *PgxWorkflowStore) SavePayments(ctx context.Context, payments []domain.Payment) error {
	if len(payments) == 0 {
		return nil
	}
	query := `
		INSERT INTO payments (payment_id, invoice_id, invoice_number, amount, payment_date, status,
		                      bank_reference, confirmed_by, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (payment_id) DO UPDATE SET
			invoice_number = EXCLUDED.invoice_number,
			amount = EXCLUDED.amount,
			payment_date = EXCLUDED.payment_date,
			status = EXCLUDED.status,
			bank_reference = EXCLUDED.bank_reference,
			confirmed_by = EXCLUDED.confirmed_by,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at;
	`
	batch := &pgx.Batch{}
	for _, p := range payments {
		m := mapping.ToModelPayment(p, 0)
		batch.Queue(query, m.PaymentID, m.InvoiceID, m.InvoiceNumber, m.Amount, m.PaymentDate, m.Status,
			m.BankReference, m.ConfirmedBy, m.Notes, m.CreatedAt, m.UpdatedAt)
	}
	if err := r.q.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewPersistenceError("failed to save payments", err)
	}
	return nil
}

const approvalColumns = `seq, approval_id, invoice_id, approver_id, approver_name, action, notes, created_at, updated_at`

func (r *PgxWorkflowStore) queryApprovals(ctx context.Context, query string, args ...any) ([]domain.InvoiceApproval, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query approvals", err)
	}
	defer rows.Close()

	approvals := make([]domain.InvoiceApproval, 0)
	for rows.Next() {
		var m models.InvoiceApproval
		if err := rows.Scan(&m.Seq, &m.ApprovalID, &m.InvoiceID, &m.ApproverID, &m.ApproverName,
			&m.Action, &m.Notes, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, apperrors.NewPersistenceError("failed to scan approval", err)
		}
		approvals = append(approvals, mapping.ToDomainApproval(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("error iterating approvals", err)
	}
	return approvals, nil
}

func (r *PgxWorkflowStore) LoadApprovals(ctx context.Context) ([]domain.InvoiceApproval, error) {
	return r.queryApprovals(ctx, `SELECT `+approvalColumns+` FROM invoice_approvals ORDER BY seq ASC;`)
}

func (r *PgxWorkflowStore) FindApprovalsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceApproval, error) {
	return r.queryApprovals(ctx, `SELECT `+approvalColumns+` FROM invoice_approvals WHERE invoice_id = $1 ORDER BY seq ASC;`, invoiceID)
}

// SaveApprovals appends ledger rows; rows already stored are left untouched.
func (r *PgxWorkflowStore) SaveApprovals(ctx context.Context, approvals []domain.InvoiceApproval) error {
	if len(approvals) == 0 {
		return nil
	}
	query := `
		INSERT INTO invoice_approvals (approval_id, invoice_id, approver_id, approver_name, action, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (approval_id) DO NOTHING;
	`
	batch := &pgx.Batch{}
	for _, a := range approvals {
		m := mapping.ToModelApproval(a, 0)
		batch.Queue(query, m.ApprovalID, m.InvoiceID, m.ApproverID, m.ApproverName, m.Action, m.Notes, m.CreatedAt, m.UpdatedAt)
	}
	if err := r.q.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewPersistenceError("failed to save approvals", err)
	}
	return nil
}
