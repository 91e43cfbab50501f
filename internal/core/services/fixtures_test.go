package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	"github.com/SscSPs/invoice_workflow_app/internal/dto"
	"github.com/SscSPs/invoice_workflow_app/internal/middleware"
	"github.com/shopspring/decimal"
)

var (
	t0          = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	manager     = domain.Identity{ID: "1", Name: "张经理", Role: domain.RoleCustomerManager}
	otherMgr    = domain.Identity{ID: "2", Name: "李经理", Role: domain.RoleCustomerManager}
	leader      = domain.Identity{ID: "3", Name: "王部长", Role: domain.RoleDepartmentLeader}
	financeUser = domain.Identity{ID: "5", Name: "赵财务", Role: domain.RoleFinance}
	supportUser = domain.Identity{ID: "6", Name: "孙支撑", Role: domain.RoleBusinessSupport}
)

func as(who domain.Identity) context.Context {
	return middleware.WithIdentity(context.Background(), who)
}

func createRequest(amounts ...int64) dto.CreateInvoiceRequest {
	items := make([]dto.InvoiceItemRequest, len(amounts))
	for i, a := range amounts {
		items[i] = dto.InvoiceItemRequest{
			Category:    "信息技术服务",
			ServiceType: "技术开发",
			TaxRate:     decimal.NewFromInt(6),
			Amount:      decimal.NewFromInt(a),
		}
	}
	return dto.CreateInvoiceRequest{
		ApplicationType:  domain.ApplicationTypeNormal,
		CustomerName:     "ABC科技有限公司",
		TaxpayerIDNumber: "91110000123456789X",
		ProjectName:      "智慧园区项目",
		InvoiceItems:     items,
	}
}

func uploadRequest() dto.UploadInvoiceRequest {
	return dto.UploadInvoiceRequest{
		UploadedInvoiceNumber:  "FP20240301001",
		UploadedInvoiceDate:    "2024-03-02",
		UploadedInvoiceFileURL: "/files/fp.pdf",
	}
}
