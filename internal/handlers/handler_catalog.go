package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portssvc "github.com/SscSPs/currency_exchange_app/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_app/internal/dto"
	"github.com/SscSPs/currency_exchange_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// catalogHandler serves payment methods and client accreditation accounts.
type catalogHandler struct {
	paymentMethods portssvc.PaymentMethodSvcFacade
	accounts       portssvc.AccreditationAccountSvcFacade
	checker        portssvc.PermissionChecker
}

func registerCatalogRoutes(
	rg *gin.RouterGroup,
	pms portssvc.PaymentMethodSvcFacade,
	accs portssvc.AccreditationAccountSvcFacade,
	checker portssvc.PermissionChecker,
) {
	h := &catalogHandler{paymentMethods: pms, accounts: accs, checker: checker}
	requirePM := middleware.RequirePermission(checker, domain.PermPaymentMethodsManage)

	pm := rg.Group("/payment-methods")
	{
		pm.GET("", h.listPaymentMethods)
		pm.POST("", requirePM, h.createPaymentMethod)
		pm.GET("/:paymentMethodID", h.getPaymentMethod)
		pm.PUT("/:paymentMethodID", requirePM, h.updatePaymentMethod)
	}

	accounts := rg.Group("/clients/:clientID/accreditation-accounts",
		middleware.RequirePermission(checker, domain.PermAccreditationAccountsManage))
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", h.updateAccount)
	}
}

// listPaymentMethods godoc
// @Summary List payment methods
// @Description Operators see active methods. includeInactive requires payment_methods.manage.
// @Tags payment methods
// @Produce json
// @Param includeInactive query bool false "Include inactive methods"
// @Success 200 {array} dto.PaymentMethodResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-methods [get]
func (h *catalogHandler) listPaymentMethods(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	onlyActive := c.Query("includeInactive") != "true"
	if !onlyActive {
		if err := h.checker.AuthorizeUserAction(c.Request.Context(), userID, domain.PermPaymentMethodsManage); err != nil {
			respondError(c, err, "authorize payment method listing")
			return
		}
	}

	methods, err := h.paymentMethods.ListPaymentMethods(c.Request.Context(), onlyActive)
	if err != nil {
		respondError(c, err, "list payment methods")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPaymentMethodResponse(methods))
}

// createPaymentMethod godoc
// @Summary Create a payment method
// @Tags payment methods
// @Accept json
// @Produce json
// @Param method body dto.CreatePaymentMethodRequest true "Payment method"
// @Success 201 {object} dto.PaymentMethodResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-methods [post]
func (h *catalogHandler) createPaymentMethod(c *gin.Context) {
	var req dto.CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "create payment method request")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	pm, err := h.paymentMethods.CreatePaymentMethod(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "create payment method")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Payment method created", slog.String("payment_method_id", pm.PaymentMethodID))
	c.JSON(http.StatusCreated, dto.ToPaymentMethodResponse(pm))
}

// getPaymentMethod godoc
// @Summary Get a payment method
// @Tags payment methods
// @Produce json
// @Param paymentMethodID path string true "Payment method ID"
// @Success 200 {object} dto.PaymentMethodResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-methods/{paymentMethodID} [get]
func (h *catalogHandler) getPaymentMethod(c *gin.Context) {
	pm, err := h.paymentMethods.GetPaymentMethodByID(c.Request.Context(), c.Param("paymentMethodID"))
	if err != nil {
		respondError(c, err, "retrieve payment method")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentMethodResponse(pm))
}

// updatePaymentMethod godoc
// @Summary Update a payment method
// @Tags payment methods
// @Accept json
// @Produce json
// @Param paymentMethodID path string true "Payment method ID"
// @Param method body dto.UpdatePaymentMethodRequest true "Fields to update"
// @Success 200 {object} dto.PaymentMethodResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-methods/{paymentMethodID} [put]
func (h *catalogHandler) updatePaymentMethod(c *gin.Context) {
	var req dto.UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "update payment method request")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	pm, err := h.paymentMethods.UpdatePaymentMethod(c.Request.Context(), c.Param("paymentMethodID"), req, userID)
	if err != nil {
		respondError(c, err, "update payment method")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentMethodResponse(pm))
}

// createAccount godoc
// @Summary Add an accreditation account to a client
// @Tags accreditation accounts
// @Accept json
// @Produce json
// @Param clientID path string true "Client ID"
// @Param account body dto.CreateAccreditationAccountRequest true "Account"
// @Success 201 {object} dto.AccreditationAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Client not found"
// @Security BearerAuth
// @Router /clients/{clientID}/accreditation-accounts [post]
func (h *catalogHandler) createAccount(c *gin.Context) {
	var req dto.CreateAccreditationAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "create accreditation account request")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	acc, err := h.accounts.CreateAccount(c.Request.Context(), c.Param("clientID"), req, userID)
	if err != nil {
		respondError(c, err, "create accreditation account")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Accreditation account created",
		slog.String("client_id", acc.ClientID), slog.String("account_id", acc.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccreditationAccountResponse(acc))
}

// listAccounts godoc
// @Summary List the accreditation accounts of a client
// @Tags accreditation accounts
// @Produce json
// @Param clientID path string true "Client ID"
// @Success 200 {array} dto.AccreditationAccountResponse
// @Security BearerAuth
// @Router /clients/{clientID}/accreditation-accounts [get]
func (h *catalogHandler) listAccounts(c *gin.Context) {
	accs, err := h.accounts.ListAccounts(c.Request.Context(), c.Param("clientID"))
	if err != nil {
		respondError(c, err, "list accreditation accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccreditationAccountResponse(accs))
}

// getAccount godoc
// @Summary Get an accreditation account
// @Tags accreditation accounts
// @Produce json
// @Param clientID path string true "Client ID"
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccreditationAccountResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{clientID}/accreditation-accounts/{accountID} [get]
func (h *catalogHandler) getAccount(c *gin.Context) {
	acc, err := h.accounts.GetAccountByID(c.Request.Context(), c.Param("clientID"), c.Param("accountID"))
	if err != nil {
		respondError(c, err, "retrieve accreditation account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccreditationAccountResponse(acc))
}

// updateAccount godoc
// @Summary Update an accreditation account
// @Tags accreditation accounts
// @Accept json
// @Produce json
// @Param clientID path string true "Client ID"
// @Param accountID path string true "Account ID"
// @Param account body dto.UpdateAccreditationAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccreditationAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{clientID}/accreditation-accounts/{accountID} [put]
func (h *catalogHandler) updateAccount(c *gin.Context) {
	var req dto.UpdateAccreditationAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "update accreditation account request")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	acc, err := h.accounts.UpdateAccount(c.Request.Context(), c.Param("clientID"), c.Param("accountID"), req, userID)
	if err != nil {
		respondError(c, err, "update accreditation account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccreditationAccountResponse(acc))
}
