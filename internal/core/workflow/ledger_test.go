package workflow_test

import (
	"testing"
	"time"

	"github.com/SscSPs/invoice_workflow_app/internal/apperrors"
	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	"github.com/SscSPs/invoice_workflow_app/internal/core/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApproval_Validation(t *testing.T) {
	_, err := workflow.NewApproval("", "3", "Liu", domain.ApprovalActionApproved, "", t0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = workflow.NewApproval("inv1", "3", "Liu", domain.ApprovalAction("maybe"), "", t0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	row, err := workflow.NewApproval("inv1", "3", "Liu", domain.ApprovalActionRejected, "why", t0)
	require.NoError(t, err)
	assert.Equal(t, "why", row.Notes)
	assert.Equal(t, t0, row.CreatedAt)
}

func TestLatestFor(t *testing.T) {
	rows := []domain.InvoiceApproval{
		{ID: "a1", InvoiceID: "inv1", Action: domain.ApprovalActionApproved, CreatedAt: t0},
		{ID: "a2", InvoiceID: "inv1", Action: domain.ApprovalActionRejected, CreatedAt: t0.Add(2 * time.Hour)},
		{ID: "a3", InvoiceID: "inv2", Action: domain.ApprovalActionApproved, CreatedAt: t0.Add(5 * time.Hour)},
		{ID: "a4", InvoiceID: "inv1", Action: domain.ApprovalActionApproved, CreatedAt: t0.Add(time.Hour)},
	}

	latest, err := workflow.LatestFor(rows, "inv1")
	require.NoError(t, err)
	assert.Equal(t, "a2", latest.ID)

	_, err = workflow.LatestFor(rows, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLatestFor_TieGoesToLastAppended(t *testing.T) {
	rows := []domain.InvoiceApproval{
		{ID: "first", InvoiceID: "inv1", CreatedAt: t0},
		{ID: "second", InvoiceID: "inv1", CreatedAt: t0},
	}
	latest, err := workflow.LatestFor(rows, "inv1")
	require.NoError(t, err)
	assert.Equal(t, "second", latest.ID)
}

func TestHistory(t *testing.T) {
	rows := []domain.InvoiceApproval{
		{ID: "late", InvoiceID: "inv1", CreatedAt: t0.Add(time.Hour)},
		{ID: "other", InvoiceID: "inv2", CreatedAt: t0},
		{ID: "early", InvoiceID: "inv1", CreatedAt: t0},
		{ID: "early-tie", InvoiceID: "inv1", CreatedAt: t0},
	}

	hist := workflow.History(rows, "inv1")
	require.Len(t, hist, 3)
	assert.Equal(t, []string{"early", "early-tie", "late"}, []string{hist[0].ID, hist[1].ID, hist[2].ID})
	assert.Equal(t, "late", rows[0].ID, "input order untouched")

	assert.Empty(t, workflow.History(rows, "none"))
}
