package workflow

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/invoice_workflow_app/internal/apperrors"
	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var maxTaxRate = decimal.NewFromInt(100)

// PrepareGroupBilling validates a group-billing form submitted for inv and
// returns the snapshot to attach. Header fields left blank are taken from
// the invoice, the invoice type defaults to vat_special, items without an
// id are numbered from 1 and the billing amount is recomputed from the items.
// All item problems are reported in one validation error.
func PrepareGroupBilling(inv *domain.Invoice, form domain.GroupBillingData) (domain.GroupBillingData, error) {
	out := form.Clone()

	var problems []string
	if len(out.InvoiceItems) == 0 {
		problems = append(problems, "at least one invoice item is required")
	}
	for i := range out.InvoiceItems {
		item := &out.InvoiceItems[i]
		if item.ID == "" {
			item.ID = strconv.Itoa(i + 1)
		}
		var missing []string
		if strings.TrimSpace(item.Category) == "" {
			missing = append(missing, "category")
		}
		if strings.TrimSpace(item.ProductName) == "" {
			missing = append(missing, "productName")
		}
		if len(missing) > 0 {
			problems = append(problems, fmt.Sprintf("item %d (%s) missing %s", i+1, item.ID, strings.Join(missing, " and ")))
		}
		if item.Amount.IsNegative() {
			problems = append(problems, fmt.Sprintf("item %d (%s) has a negative amount", i+1, item.ID))
		}
		if item.Quantity.IsNegative() {
			problems = append(problems, fmt.Sprintf("item %d (%s) has a negative quantity", i+1, item.ID))
		}
		if item.TaxRate.IsNegative() || item.TaxRate.GreaterThan(maxTaxRate) {
			problems = append(problems, fmt.Sprintf("item %d (%s) tax rate must be between 0 and 100", i+1, item.ID))
		}
	}

	switch out.InvoiceType {
	case "":
		out.InvoiceType = domain.GroupInvoiceTypeVATSpecial
	case domain.GroupInvoiceTypeVATSpecial, domain.GroupInvoiceTypeVATNormal:
	default:
		problems = append(problems, fmt.Sprintf("unknown invoice type %q", out.InvoiceType))
	}

	if len(problems) > 0 {
		return domain.GroupBillingData{}, fmt.Errorf("%w: group billing form invalid: %s", apperrors.ErrValidation, strings.Join(problems, "; "))
	}

	if out.ProjectName == "" {
		out.ProjectName = inv.ProjectName
	}
	if out.CustomerName == "" {
		out.CustomerName = inv.CustomerName
	}
	if out.TaxpayerIDNumber == "" {
		out.TaxpayerIDNumber = inv.TaxpayerIDNumber
	}
	out.BillingAmount = out.Total()
	return out, nil
}
