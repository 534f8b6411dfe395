package domain

// Permission is a named capability granted through roles.
type Permission string

const (
	PermCurrenciesManage            Permission = "currencies.manage"
	PermRatesManage                 Permission = "rates.manage"
	PermClientsManage               Permission = "clients.manage"
	PermSegmentationsManage         Permission = "segmentations.manage"
	PermPaymentMethodsManage        Permission = "payment_methods.manage"
	PermAccreditationAccountsManage Permission = "accreditation_accounts.manage"
	PermTransactionsOperate         Permission = "transactions.operate"
	PermTransactionsManage          Permission = "transactions.manage"
	PermUsersManage                 Permission = "users.manage"
	PermRolesManage                 Permission = "roles.manage"
)

// AdminRoleName is the role that implicitly holds every permission.
const AdminRoleName = "admin"

// AllPermissions is the fixed permission catalog.
var AllPermissions = []Permission{
	PermCurrenciesManage,
	PermRatesManage,
	PermClientsManage,
	PermSegmentationsManage,
	PermPaymentMethodsManage,
	PermAccreditationAccountsManage,
	PermTransactionsOperate,
	PermTransactionsManage,
	PermUsersManage,
	PermRolesManage,
}

// IsKnownPermission reports whether p belongs to the catalog.
func IsKnownPermission(p Permission) bool {
	for _, known := range AllPermissions {
		if known == p {
			return true
		}
	}
	return false
}

// Role groups permissions that can be granted to users.
type Role struct {
	RoleID      string       `json:"roleID"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Permissions []Permission `json:"permissions"`
	AuditFields
}

// HasPermission reports whether the role grants p.
func (r Role) HasPermission(p Permission) bool {
	if r.Name == AdminRoleName {
		return true
	}
	for _, granted := range r.Permissions {
		if granted == p {
			return true
		}
	}
	return false
}
