package mapping

import (
	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/SscSPs/currency_exchange_app/internal/models"
)

func ToModelRole(d domain.Role) models.Role {
	perms := make([]string, len(d.Permissions))
	for i, p := range d.Permissions {
		perms[i] = string(p)
	}
	return models.Role{
		RoleID:      d.RoleID,
		Name:        d.Name,
		Description: d.Description,
		Permissions: perms,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainRole(m models.Role) domain.Role {
	perms := make([]domain.Permission, len(m.Permissions))
	for i, p := range m.Permissions {
		perms[i] = domain.Permission(p)
	}
	return domain.Role{
		RoleID:      m.RoleID,
		Name:        m.Name,
		Description: m.Description,
		Permissions: perms,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainRoleSlice(ms []models.Role) []domain.Role {
	ds := make([]domain.Role, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRole(m)
	}
	return ds
}
