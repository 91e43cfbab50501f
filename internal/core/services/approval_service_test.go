package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/invoice_workflow_app/internal/adapters/memory"
	"github.com/SscSPs/invoice_workflow_app/internal/apperrors"
	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_workflow_app/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_workflow_app/internal/core/services"
	"github.com/SscSPs/invoice_workflow_app/internal/middleware"
	"github.com/SscSPs/invoice_workflow_app/internal/platform/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprovalService_RecordLatestAndHistory(t *testing.T) {
	store := memory.NewStore()
	fake := clock.NewFakeClock(t0)
	svc := services.NewApprovalService(portsrepo.NewRepositoryProvider(store), middleware.ContextIdentityProvider{},
		services.WithClock(fake))

	_, err := svc.LatestApproval(as(leader), "inv1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	first, err := svc.RecordApproval(as(leader), "inv1", domain.ApprovalActionApproved, "ok")
	require.NoError(t, err)
	assert.Equal(t, leader.ID, first.ApproverID)
	assert.Equal(t, t0, first.CreatedAt)

	fake.Advance(time.Hour)
	second, err := svc.RecordApproval(as(financeUser), "inv1", domain.ApprovalActionRejected, "no")
	require.NoError(t, err)

	latest, err := svc.LatestApproval(as(leader), "inv1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	history, err := svc.ListApprovals(as(leader), "inv1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, first.ID, history[0].ID)

	invoices, _ := store.LoadInvoices(context.Background())
	assert.Empty(t, invoices, "recording never touches invoices")
}

func TestApprovalService_Validation(t *testing.T) {
	svc := services.NewApprovalService(portsrepo.NewRepositoryProvider(memory.NewStore()), middleware.ContextIdentityProvider{})

	_, err := svc.RecordApproval(as(leader), "", domain.ApprovalActionApproved, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.RecordApproval(as(leader), "inv1", "maybe", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.RecordApproval(context.Background(), "inv1", domain.ApprovalActionApproved, "")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	_, err = svc.LatestApproval(context.Background(), "inv1")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	_, err = svc.ListApprovals(context.Background(), "inv1")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}
