package domain

import "time"

// TodoType categorises an actionable item.
type TodoType string

const (
	TodoTypeInvoiceApproval     TodoType = "invoice_approval"
	TodoTypeInvoiceUpload       TodoType = "invoice_upload"
	TodoTypePaymentConfirmation TodoType = "payment_confirmation"
)

// TodoPriority orders the to-do queue.
type TodoPriority string

const (
	PriorityHigh   TodoPriority = "high"
	PriorityMedium TodoPriority = "medium"
	PriorityLow    TodoPriority = "low"
)

// Rank returns the sort rank of the priority, lowest first.
func (p TodoPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// TodoStatus is the state shown on a to-do card.
type TodoStatus string

const (
	TodoStatusPending  TodoStatus = "pending"
	TodoStatusRejected TodoStatus = "rejected"
)

// TodoItem is a derived, never persisted, task for one identity.
// RelatedData holds a copy of the Invoice or Payment it was derived from.
type TodoItem struct {
	ID            string       `json:"id"`
	Type          TodoType     `json:"type"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	RelatedID     string       `json:"relatedId"`
	RelatedData   any          `json:"relatedData"`
	Priority      TodoPriority `json:"priority"`
	Status        TodoStatus   `json:"status"`
	ProcessName   string       `json:"processName"`
	Initiator     string       `json:"initiator"`
	InitiatorName string       `json:"initiatorName,omitempty"`
	Assignee      string       `json:"assignee"`
	AssigneeName  string       `json:"assigneeName,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
}
