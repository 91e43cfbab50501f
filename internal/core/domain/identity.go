package domain

// Role is the business role of the person operating the workflow.
type Role string

const (
	RoleCustomerManager  Role = "customer_manager"
	RoleDepartmentLeader Role = "department_leader"
	RoleFinance          Role = "finance"
	RoleBusinessSupport  Role = "business_support"
	RoleAdmin            Role = "admin"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomerManager, RoleDepartmentLeader, RoleFinance, RoleBusinessSupport, RoleAdmin:
		return true
	}
	return false
}

// Identity is the current actor as supplied by the identity provider.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}
