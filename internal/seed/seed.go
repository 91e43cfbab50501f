// Package seed loads the demo data set by replaying it through the
// application services, so every demo decision is also in the ledger.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_workflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_workflow_app/internal/core/services"
	"github.com/SscSPs/invoice_workflow_app/internal/dto"
	"github.com/SscSPs/invoice_workflow_app/internal/middleware"
	"github.com/SscSPs/invoice_workflow_app/internal/platform/clock"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrNotEmpty is returned when the store already holds invoices.
var ErrNotEmpty = errors.New("store is not empty")

// Demo users, one per role.
var (
	ManagerZhang = domain.Identity{ID: "1", Name: "张经理", Role: domain.RoleCustomerManager}
	ManagerLi    = domain.Identity{ID: "2", Name: "李经理", Role: domain.RoleCustomerManager}
	LeaderLiu    = domain.Identity{ID: "3", Name: "刘部长", Role: domain.RoleDepartmentLeader}
	FinanceWang  = domain.Identity{ID: "5", Name: "王财务", Role: domain.RoleFinance}
	SupportZhao  = domain.Identity{ID: "6", Name: "赵支撑", Role: domain.RoleBusinessSupport}
)

// Users lists the demo identities.
var Users = []domain.Identity{ManagerZhang, ManagerLi, LeaderLiu, FinanceWang, SupportZhao}

var emails = map[string]domain.Identity{
	"manager1@company.com":    ManagerZhang,
	"manager2@company.com":    ManagerLi,
	"dept_leader@company.com": LeaderLiu,
	"finance@company.com":     FinanceWang,
	"support@company.com":     SupportZhao,
}

// Directory resolves the demo users by their email address.
type Directory struct{}

// LookupByEmail implements services.IdentityDirectory.
func (Directory) LookupByEmail(_ context.Context, email string) (domain.Identity, bool) {
	who, ok := emails[strings.ToLower(strings.TrimSpace(email))]
	return who, ok
}

// DefaultStart is the timestamp of the first demo event.
var DefaultStart = time.Date(2024, 2, 15, 9, 0, 0, 0, time.UTC)

// Summary counts what Load wrote.
type Summary struct {
	Invoices  int `json:"invoices"`
	Payments  int `json:"payments"`
	Approvals int `json:"approvals"`
}

type loader struct {
	svc      *portssvc.ServiceContainer
	clock    *clock.FakeClock
	validate *validator.Validate
}

// Load writes the demo data set into an empty store. Events are spaced a
// few hours apart starting at start.
func Load(ctx context.Context, repos portsrepo.RepositoryProvider, start time.Time, opts ...services.ServiceOption) (Summary, error) {
	existing, err := repos.InvoiceRepo.LoadInvoices(ctx)
	if err != nil {
		return Summary{}, err
	}
	if len(existing) > 0 {
		return Summary{}, fmt.Errorf("%w: %d invoices present", ErrNotEmpty, len(existing))
	}

	validate := validator.New()
	validate.SetTagName("binding")

	fake := clock.NewFakeClock(start)
	l := &loader{
		svc:      services.NewServiceContainer(repos, middleware.ContextIdentityProvider{}, append(opts, services.WithClock(fake))...),
		clock:    fake,
		validate: validate,
	}
	if err := l.run(ctx); err != nil {
		return Summary{}, err
	}

	invoices, err := repos.InvoiceRepo.LoadInvoices(ctx)
	if err != nil {
		return Summary{}, err
	}
	payments, err := repos.PaymentRepo.LoadPayments(ctx)
	if err != nil {
		return Summary{}, err
	}
	approvals, err := repos.ApprovalRepo.LoadApprovals(ctx)
	if err != nil {
		return Summary{}, err
	}
	s := Summary{Invoices: len(invoices), Payments: len(payments), Approvals: len(approvals)}
	middleware.GetLoggerFromCtx(ctx).Info("Demo data loaded",
		slog.Int("invoices", s.Invoices), slog.Int("payments", s.Payments), slog.Int("approvals", s.Approvals))
	return s, nil
}

func as(ctx context.Context, who domain.Identity) context.Context {
	return middleware.WithIdentity(ctx, who)
}

func (l *loader) tick() {
	l.clock.Advance(3 * time.Hour)
}

func (l *loader) create(ctx context.Context, who domain.Identity, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	if err := l.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid demo invoice for %s: %w", req.CustomerName, err)
	}
	l.tick()
	return l.svc.Invoice.CreateInvoice(as(ctx, who), req)
}

func (l *loader) approve(ctx context.Context, who domain.Identity, invoiceID, notes string) error {
	l.tick()
	_, err := l.svc.Invoice.ApproveInvoice(as(ctx, who), invoiceID, notes)
	return err
}

func (l *loader) run(ctx context.Context) error {
	// Waiting for the department leader.
	if _, err := l.create(ctx, ManagerZhang, contractRequest(abc, "normal", "第一期款项", 500000)); err != nil {
		return err
	}

	// Waiting for finance.
	inv, err := l.create(ctx, ManagerZhang, contractRequest(xyz, "normal", "项目启动费用", 300000))
	if err != nil {
		return err
	}
	if err := l.approve(ctx, LeaderLiu, inv.ID, "同意"); err != nil {
		return err
	}

	// Approved and waiting for the invoice upload.
	inv, err = l.create(ctx, ManagerLi, contractRequest(testCo, "urgent", "数字化转型首付款", 400000, 300000))
	if err != nil {
		return err
	}
	if err := l.approve(ctx, LeaderLiu, inv.ID, ""); err != nil {
		return err
	}
	if err := l.approve(ctx, FinanceWang, inv.ID, "金额核对无误"); err != nil {
		return err
	}

	// Uploaded, waiting for the customer manager, with a pending payment.
	inv, err = l.create(ctx, ManagerZhang, contractRequest(abc, "normal", "第二期款项", 200000))
	if err != nil {
		return err
	}
	if err := l.approve(ctx, LeaderLiu, inv.ID, ""); err != nil {
		return err
	}
	if err := l.approve(ctx, FinanceWang, inv.ID, ""); err != nil {
		return err
	}
	l.tick()
	if _, err := l.svc.Invoice.UploadInvoice(as(ctx, FinanceWang), inv.ID, dto.UploadInvoiceRequest{
		UploadedInvoiceNumber: "FP20240220001",
		UploadedInvoiceDate:   "2024-02-20",
		UploadNotes:           "已开具增值税专用发票",
	}); err != nil {
		return err
	}
	if err := l.pay(ctx, inv.ID, "200000", "2024-02-25", "BNK-20240225-01", false); err != nil {
		return err
	}

	// Rejected by the department leader.
	inv, err = l.create(ctx, ManagerZhang, contractRequest(xyz, "reissue", "红冲重开", 150000))
	if err != nil {
		return err
	}
	l.tick()
	if _, err := l.svc.Invoice.RejectInvoice(as(ctx, LeaderLiu), inv.ID, "税率有误，请核实后重新提交"); err != nil {
		return err
	}

	// Settled and paid.
	inv, err = l.create(ctx, ManagerLi, contractRequest(testCo, "normal", "验收款", 100000))
	if err != nil {
		return err
	}
	if err := l.approve(ctx, LeaderLiu, inv.ID, ""); err != nil {
		return err
	}
	if err := l.approve(ctx, FinanceWang, inv.ID, ""); err != nil {
		return err
	}
	l.tick()
	if _, err := l.svc.Invoice.UploadInvoice(as(ctx, SupportZhao), inv.ID, dto.UploadInvoiceRequest{
		UploadedInvoiceNumber: "FP20240301007",
		UploadedInvoiceDate:   "2024-03-01",
	}); err != nil {
		return err
	}
	l.tick()
	if _, err := l.svc.Invoice.ConfirmInvoice(as(ctx, ManagerLi), inv.ID, false); err != nil {
		return err
	}
	return l.pay(ctx, inv.ID, "100000", "2024-03-05", "BNK-20240305-02", true)
}

func (l *loader) pay(ctx context.Context, invoiceID, amount, date, ref string, confirm bool) error {
	req := dto.RegisterPaymentRequest{
		InvoiceID:     invoiceID,
		Amount:        decimal.RequireFromString(amount),
		PaymentDate:   date,
		BankReference: ref,
	}
	if err := l.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid demo payment %s: %w", ref, err)
	}
	l.tick()
	p, err := l.svc.Payment.RegisterPayment(as(ctx, SupportZhao), req)
	if err != nil || !confirm {
		return err
	}
	l.tick()
	_, err = l.svc.Payment.ConfirmPayment(as(ctx, FinanceWang), p.ID)
	return err
}

type contract struct {
	code, name               string
	projectID, projectCode   string
	projectName, customer    string
	taxpayerID, industry     string
	contractRevenue, mainRev int64
}

var (
	abc = contract{
		code: "CT-2024-001", name: "ABC公司软件开发合同",
		projectID: "p1", projectCode: "PRJ-2024-001", projectName: "项目A",
		customer: "ABC公司", taxpayerID: "91110000MA01234567", industry: "软件和信息技术服务业",
		contractRevenue: 1000000, mainRev: 800000,
	}
	xyz = contract{
		code: "CT-2024-002", name: "XYZ集团系统集成项目",
		projectID: "p2", projectCode: "PRJ-2024-002", projectName: "项目B",
		customer: "XYZ集团", taxpayerID: "91110000MA98765432", industry: "信息系统集成服务",
		contractRevenue: 800000, mainRev: 600000,
	}
	testCo = contract{
		code: "CT-2024-003", name: "测试企业数字化转型项目",
		projectID: "p3", projectCode: "PRJ-2024-003", projectName: "项目C",
		customer: "测试企业", taxpayerID: "91310000MA1FL0000X", industry: "软件和信息技术服务业",
		contractRevenue: 1500000, mainRev: 1200000,
	}
)

func contractRequest(c contract, appType domain.ApplicationType, notes string, amounts ...int64) dto.CreateInvoiceRequest {
	items := make([]dto.InvoiceItemRequest, len(amounts))
	for i, a := range amounts {
		items[i] = dto.InvoiceItemRequest{
			Category:    "增值税专用发票",
			ServiceType: "软件开发服务",
			TaxRate:     decimal.NewFromInt(6),
			Amount:      decimal.NewFromInt(a),
		}
	}
	listed := true
	return dto.CreateInvoiceRequest{
		ApplicationType:  appType,
		CustomerName:     c.customer,
		TaxpayerIDNumber: c.taxpayerID,
		ContractRevenue:  decimal.NewFromInt(c.contractRevenue),
		MainRevenue:      decimal.NewFromInt(c.mainRev),
		ProjectID:        c.projectID,
		ProjectName:      c.projectName,
		ProjectCode:      c.projectCode,
		ContractCode:     c.code,
		ContractName:     c.name,
		IndustryType:     c.industry,
		IsRevenueListed:  &listed,
		InvoiceNotes:     notes,
		InvoiceItems:     items,
	}
}
