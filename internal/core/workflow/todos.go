package workflow

import (
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	"github.com/SscSPs/invoice_workflow_app/internal/utils"
)

const (
	processDeptLeaderApproval  = "发票审批流程-部门领导审批"
	processGroupBillingReview  = "集团开票审批流程"
	processFinanceApproval     = "发票审批流程-财务审批"
	processInvoiceUpload       = "发票上传流程"
	processPaymentConfirmation = "回款确认流程"
	processRejectedResubmit    = "发票审批流程"
	processCustomerConfirm     = "发票确认流程"
	processGroupInvoiceUpload  = "集团开票流程"

	unknownInitiator     = "unknown"
	unknownInitiatorName = "未知"
)

// TodoSummary counts derived to-dos by type.
type TodoSummary struct {
	Total               int `json:"total"`
	InvoiceApproval     int `json:"invoiceApproval"`
	InvoiceUpload       int `json:"invoiceUpload"`
	PaymentConfirmation int `json:"paymentConfirmation"`
}

// DeriveTodos computes the actionable items for who from the current
// collections. It is a pure function: the same inputs always give the same
// ordered output, and the inputs are never modified.
func DeriveTodos(invoices []domain.Invoice, payments []domain.Payment, who domain.Identity) []domain.TodoItem {
	var items []domain.TodoItem

	switch who.Role {
	case domain.RoleDepartmentLeader:
		for i := range invoices {
			inv := &invoices[i]
			switch inv.Status {
			case domain.InvoiceStatusPendingDeptLeaderApproval:
				items = append(items, invoiceTodo(inv, who, todoSpec{
					prefix: "invoice", kind: domain.TodoTypeInvoiceApproval,
					title: inv.DisplayNumber(), description: invoiceSummary(inv),
					priority: amountPriority(inv), process: processDeptLeaderApproval,
					createdAt: inv.CreatedAt,
				}))
			case domain.InvoiceStatusGroupBillingPending:
				items = append(items, invoiceTodo(inv, who, todoSpec{
					prefix: "group-billing", kind: domain.TodoTypeInvoiceApproval,
					title: "集团开票审核 - " + inv.DisplayNumber(), description: invoiceSummary(inv),
					priority: domain.PriorityHigh, process: processGroupBillingReview,
					createdAt: inv.CreatedAt,
				}))
			}
		}

	case domain.RoleFinance:
		for i := range invoices {
			inv := &invoices[i]
			switch inv.Status {
			case domain.InvoiceStatusPendingFinanceApproval:
				items = append(items, invoiceTodo(inv, who, todoSpec{
					prefix: "invoice-finance-approval", kind: domain.TodoTypeInvoiceApproval,
					title: inv.DisplayNumber(), description: invoiceSummary(inv),
					priority: amountPriority(inv), process: processFinanceApproval,
					createdAt: inv.UpdatedAt,
				}))
			case domain.InvoiceStatusApproved:
				items = append(items, invoiceTodo(inv, who, todoSpec{
					prefix: "invoice-upload", kind: domain.TodoTypeInvoiceUpload,
					title: inv.DisplayNumber(), description: invoiceSummary(inv),
					priority: amountPriority(inv), process: processInvoiceUpload,
					createdAt: inv.UpdatedAt,
				}))
			}
		}
		for i := range payments {
			if payments[i].Status == domain.PaymentStatusPending {
				items = append(items, paymentTodo(&payments[i], invoices, who))
			}
		}

	case domain.RoleCustomerManager:
		for i := range invoices {
			inv := &invoices[i]
			if !inv.IsOwnedBy(who.ID) {
				continue
			}
			switch inv.Status {
			case domain.InvoiceStatusRejected:
				item := invoiceTodo(inv, who, todoSpec{
					prefix: "invoice", kind: domain.TodoTypeInvoiceApproval,
					title:       inv.DisplayNumber(),
					description: fmt.Sprintf("项目：%s，需要修改后重新提交", inv.ProjectName),
					priority:    domain.PriorityHigh, process: processRejectedResubmit,
					createdAt: inv.UpdatedAt,
				})
				item.Status = domain.TodoStatusRejected
				items = append(items, item)
			case domain.InvoiceStatusPendingCustomerConfirmation:
				createdAt := inv.UpdatedAt
				if inv.UploadedAt != nil {
					createdAt = *inv.UploadedAt
				}
				item := invoiceTodo(inv, who, todoSpec{
					prefix: "invoice-confirm", kind: domain.TodoTypeInvoiceApproval,
					title:       "发票确认 - " + inv.DisplayNumber(),
					description: fmt.Sprintf("项目：%s，发票号：%s，请确认发票信息", inv.ProjectName, inv.UploadedInvoiceNumber),
					priority:    domain.PriorityHigh, process: processCustomerConfirm,
					createdAt: createdAt,
				})
				if inv.UploadedBy != "" {
					item.Initiator, item.InitiatorName = inv.UploadedBy, inv.UploadedByName
				}
				items = append(items, item)
			}
		}

	case domain.RoleBusinessSupport:
		for i := range invoices {
			inv := &invoices[i]
			if inv.Status != domain.InvoiceStatusGroupBillingReviewed {
				continue
			}
			billed := inv.Amount
			if inv.GroupBillingData != nil && !inv.GroupBillingData.BillingAmount.IsZero() {
				billed = inv.GroupBillingData.BillingAmount
			}
			items = append(items, invoiceTodo(inv, who, todoSpec{
				prefix: "group-billing-upload", kind: domain.TodoTypeInvoiceUpload,
				title: "集团发票上传 - " + inv.DisplayNumber(),
				description: fmt.Sprintf("项目：%s，客户：%s，开票金额：%s",
					inv.ProjectName, inv.CustomerName, utils.FormatYuan(billed)),
				priority: domain.PriorityHigh, process: processGroupInvoiceUpload,
				createdAt: inv.UpdatedAt,
			}))
		}
	}

	SortTodos(items)
	return items
}

// SortTodos orders items by priority rank, then newest first. The sort is
// stable so equal keys keep derivation order.
func SortTodos(items []domain.TodoItem) {
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := items[i].Priority.Rank(), items[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

// Summarize counts items per to-do type.
func Summarize(items []domain.TodoItem) TodoSummary {
	s := TodoSummary{Total: len(items)}
	for _, it := range items {
		switch it.Type {
		case domain.TodoTypeInvoiceApproval:
			s.InvoiceApproval++
		case domain.TodoTypeInvoiceUpload:
			s.InvoiceUpload++
		case domain.TodoTypePaymentConfirmation:
			s.PaymentConfirmation++
		}
	}
	return s
}

type todoSpec struct {
	prefix      string
	kind        domain.TodoType
	title       string
	description string
	priority    domain.TodoPriority
	process     string
	createdAt   time.Time
}

func invoiceTodo(inv *domain.Invoice, who domain.Identity, spec todoSpec) domain.TodoItem {
	return domain.TodoItem{
		ID:            spec.prefix + "-" + inv.ID,
		Type:          spec.kind,
		Title:         spec.title,
		Description:   spec.description,
		RelatedID:     inv.ID,
		RelatedData:   inv.Clone(),
		Priority:      spec.priority,
		Status:        domain.TodoStatusPending,
		ProcessName:   spec.process,
		Initiator:     inv.SubmittedBy,
		InitiatorName: inv.SubmittedByName,
		Assignee:      who.ID,
		AssigneeName:  who.Name,
		CreatedAt:     spec.createdAt,
	}
}

func paymentTodo(p *domain.Payment, invoices []domain.Invoice, who domain.Identity) domain.TodoItem {
	initiator, initiatorName := unknownInitiator, unknownInitiatorName
	for i := range invoices {
		if invoices[i].ID == p.InvoiceID {
			if invoices[i].SubmittedBy != "" {
				initiator = invoices[i].SubmittedBy
			}
			if invoices[i].SubmittedByName != "" {
				initiatorName = invoices[i].SubmittedByName
			}
			break
		}
	}
	bankRef := p.BankReference
	if bankRef == "" {
		bankRef = "无"
	}
	return domain.TodoItem{
		ID:            "payment-" + p.ID,
		Type:          domain.TodoTypePaymentConfirmation,
		Title:         p.DisplayNumber(),
		Description:   fmt.Sprintf("金额：%s，银行流水：%s", utils.FormatYuan(p.Amount), bankRef),
		RelatedID:     p.ID,
		RelatedData:   *p,
		Priority:      domain.PriorityMedium,
		Status:        domain.TodoStatusPending,
		ProcessName:   processPaymentConfirmation,
		Initiator:     initiator,
		InitiatorName: initiatorName,
		Assignee:      who.ID,
		AssigneeName:  who.Name,
		CreatedAt:     p.CreatedAt,
	}
}

func amountPriority(inv *domain.Invoice) domain.TodoPriority {
	if inv.Amount.GreaterThan(domain.HighPriorityAmount) {
		return domain.PriorityHigh
	}
	return domain.PriorityMedium
}

func invoiceSummary(inv *domain.Invoice) string {
	return fmt.Sprintf("项目：%s，客户：%s，金额：%s", inv.ProjectName, inv.CustomerName, utils.FormatYuan(inv.Amount))
}
