package mapping

import (
	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/SscSPs/currency_exchange_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:               d.UserID,
		Username:             d.Username,
		PasswordHash:         d.PasswordHash,
		Name:                 d.Name,
		Email:                d.Email,
		NotificationsEnabled: d.NotificationsEnabled,
		DeletedAt:            d.DeletedAt,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:               m.UserID,
		Username:             m.Username,
		PasswordHash:         m.PasswordHash,
		Name:                 m.Name,
		Email:                m.Email,
		NotificationsEnabled: m.NotificationsEnabled,
		DeletedAt:            m.DeletedAt,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
