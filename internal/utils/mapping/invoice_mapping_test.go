package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	"github.com/SscSPs/invoice_workflow_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceMapping(t *testing.T) {
	uploaded := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	inv := domain.Invoice{
		ID:          "inv1",
		Status:      domain.InvoiceStatusGroupBillingReviewed,
		Amount:      decimal.RequireFromString("1234.56"),
		SubmittedBy: "1",
		InvoiceItems: []domain.InvoiceItem{
			{ID: "1", Category: "服务", Amount: decimal.RequireFromString("1234.56"), TaxRate: decimal.NewFromInt(6)},
		},
		UploadedAt: &uploaded,
		GroupBillingData: &domain.GroupBillingData{
			ProjectName:   "P",
			BillingAmount: decimal.NewFromInt(10),
			InvoiceType:   domain.GroupInvoiceTypeVATNormal,
			InvoiceItems:  []domain.GroupBillingItem{{ID: "1", Category: "c", ProductName: "p", Amount: decimal.NewFromInt(10)}},
		},
		CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC),
	}

	row, err := mapping.ToModelInvoice(inv, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), row.Seq)
	assert.Equal(t, "group_billing_reviewed", row.Status)
	assert.Equal(t, "1", row.SubmittedBy)

	back, err := mapping.ToDomainInvoice(row)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, back.ID)
	assert.True(t, inv.Amount.Equal(back.Amount))
	require.NotNil(t, back.GroupBillingData)
	assert.Equal(t, domain.GroupInvoiceTypeVATNormal, back.GroupBillingData.InvoiceType)
	assert.Equal(t, uploaded, *back.UploadedAt)
	assert.Equal(t, inv.UpdatedAt, back.UpdatedAt)

	row.Document = []byte("{not json")
	_, err = mapping.ToDomainInvoice(row)
	assert.Error(t, err)
}

func TestPaymentAndApprovalMapping(t *testing.T) {
	at := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)
	p := domain.Payment{ID: "p1", InvoiceID: "inv1", Amount: decimal.NewFromInt(5), PaymentDate: "2024-03-05",
		Status: domain.PaymentStatusConfirmed, ConfirmedBy: "5", CreatedAt: at}
	assert.Equal(t, p, mapping.ToDomainPayment(mapping.ToModelPayment(p, 1)))

	a := domain.InvoiceApproval{ID: "a1", InvoiceID: "inv1", ApproverID: "3", ApproverName: "王部长",
		Action: domain.ApprovalActionApproved, Notes: "ok", CreatedAt: at}
	assert.Equal(t, a, mapping.ToDomainApproval(mapping.ToModelApproval(a, 1)))
}
