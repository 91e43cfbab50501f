package seed_test

import (
	"context"
	"testing"

	"github.com/SscSPs/invoice_workflow_app/internal/adapters/memory"
	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_workflow_app/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_workflow_app/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DemoDataSet(t *testing.T) {
	ctx := context.Background()
	repos := portsrepo.NewRepositoryProvider(memory.NewStore())

	summary, err := seed.Load(ctx, repos, seed.DefaultStart)
	require.NoError(t, err)
	assert.Equal(t, seed.Summary{Invoices: 6, Payments: 2, Approvals: 8}, summary)

	invoices, err := repos.InvoiceRepo.LoadInvoices(ctx)
	require.NoError(t, err)
	counts := map[domain.InvoiceStatus]int{}
	for _, inv := range invoices {
		counts[inv.Status]++
		assert.True(t, inv.Amount.IsPositive())
	}
	assert.Equal(t, map[domain.InvoiceStatus]int{
		domain.InvoiceStatusPendingDeptLeaderApproval:   1,
		domain.InvoiceStatusPendingFinanceApproval:      1,
		domain.InvoiceStatusApproved:                    1,
		domain.InvoiceStatusPendingCustomerConfirmation: 1,
		domain.InvoiceStatusRejected:                    1,
		domain.InvoiceStatusSettled:                     1,
	}, counts)

	payments, err := repos.PaymentRepo.LoadPayments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, domain.PaymentStatusPending, payments[0].Status)
	assert.Equal(t, domain.PaymentStatusConfirmed, payments[1].Status)
}

func TestLoad_RefusesNonEmptyStore(t *testing.T) {
	ctx := context.Background()
	repos := portsrepo.NewRepositoryProvider(memory.NewStore())

	_, err := seed.Load(ctx, repos, seed.DefaultStart)
	require.NoError(t, err)

	_, err = seed.Load(ctx, repos, seed.DefaultStart)
	assert.ErrorIs(t, err, seed.ErrNotEmpty)
}

func TestDirectory_LookupByEmail(t *testing.T) {
	who, ok := seed.Directory{}.LookupByEmail(context.Background(), " Finance@Company.com ")
	require.True(t, ok)
	assert.Equal(t, seed.FinanceWang, who)

	_, ok = seed.Directory{}.LookupByEmail(context.Background(), "nobody@company.com")
	assert.False(t, ok)
}
