package dto

import (
	"time"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/SscSPs/currency_exchange_app/internal/utils/conversion"
	"github.com/shopspring/decimal"
)

// CreateClientRequest defines the data needed to register a client.
type CreateClientRequest struct {
	Name           string  `json:"name" binding:"required,max=200"`
	DocumentID     *string `json:"documentID" binding:"omitempty,max=50"`
	Email          string  `json:"email" binding:"required,email"`
	Phone          *string `json:"phone" binding:"omitempty,max=30"`
	SegmentationID *string `json:"segmentationID" binding:"omitempty,uuid"`
}

// UpdateClientRequest defines the updatable fields of a client.
// An empty SegmentationID removes the client from its segmentation.
type UpdateClientRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=200"`
	DocumentID     *string `json:"documentID" binding:"omitempty,max=50"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Phone          *string `json:"phone" binding:"omitempty,max=30"`
	SegmentationID *string `json:"segmentationID"`
	Status         *string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// AssignClientUserRequest names the operator assigned to a client.
type AssignClientUserRequest struct {
	UserID string `json:"userID" binding:"required,uuid"`
}

// ListClientsParams defines query parameters for listing clients.
type ListClientsParams struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=200"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

type ClientResponse struct {
	ClientID      string                `json:"clientID"`
	Name          string                `json:"name"`
	DocumentID    *string               `json:"documentID,omitempty"`
	Email         string                `json:"email"`
	Phone         *string               `json:"phone,omitempty"`
	Status        string                `json:"status"`
	Segmentation  *SegmentationResponse `json:"segmentation,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	LastUpdatedAt time.Time             `json:"lastUpdatedAt"`
}

func ToClientResponse(client *domain.Client) ClientResponse {
	resp := ClientResponse{
		ClientID:      client.ClientID,
		Name:          client.Name,
		DocumentID:    client.DocumentID,
		Email:         client.Email,
		Phone:         client.Phone,
		Status:        string(client.Status),
		CreatedAt:     client.CreatedAt,
		LastUpdatedAt: client.LastUpdatedAt,
	}
	if client.Segmentation != nil {
		seg := ToSegmentationResponse(client.Segmentation)
		resp.Segmentation = &seg
	}
	return resp
}

func ToListClientResponse(clients []domain.Client) []ClientResponse {
	res := make([]ClientResponse, len(clients))
	for i := range clients {
		res[i] = ToClientResponse(&clients[i])
	}
	return res
}

// SelectOperativeClientRequest selects the client the caller operates for.
type SelectOperativeClientRequest struct {
	ClienteID string `json:"cliente_id" binding:"required"`
}

// OperativeClientResponse describes the selected client and the discount it carries.
type OperativeClientResponse struct {
	Success       bool            `json:"success"`
	ClienteID     string          `json:"cliente_id,omitempty"`
	ClienteNombre string          `json:"cliente_nombre,omitempty"`
	Segmento      string          `json:"segmento"`
	Descuento     decimal.Decimal `json:"descuento"`
}

// ToOperativeClientResponse describes the selection of an operator. A nil client reports no selection.
func ToOperativeClientResponse(client *domain.Client) OperativeClientResponse {
	discount, segment := conversion.ResolveDiscount(client)
	resp := OperativeClientResponse{Success: client != nil, Segmento: segment, Descuento: discount}
	if client != nil {
		resp.ClienteID = client.ClientID
		resp.ClienteNombre = client.Name
	}
	return resp
}
