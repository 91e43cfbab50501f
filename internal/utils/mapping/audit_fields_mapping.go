package mapping

import (
	"time"

	"github.com/SscSPs/invoice_workflow_app/internal/models"
)

// ToModelAuditFields builds the stored timestamps.
func ToModelAuditFields(createdAt, updatedAt time.Time) models.AuditFields {
	return models.AuditFields{
		CreatedAt: createdAt.UTC(),
		UpdatedAt: updatedAt.UTC(),
	}
}
