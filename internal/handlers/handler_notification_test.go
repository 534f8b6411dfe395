package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/currency_exchange_app/internal/apperrors"
	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/SscSPs/currency_exchange_app/internal/dto"
	"github.com/SscSPs/currency_exchange_app/internal/realtime"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type NotificationHandlerTestSuite struct {
	handlerSuite
}

func (suite *NotificationHandlerTestSuite) TestGetConfig() {
	prefs := &domain.NotificationPreferences{
		Enabled: true,
		Currencies: []domain.CurrencyPreference{
			{CurrencyCode: "PYG", Active: true},
			{CurrencyCode: "USD", Active: true},
			{CurrencyCode: "EUR", Active: false},
		},
	}
	suite.mockSubscriptionService.On("GetPreferences", mock.Anything, suite.userID).Return(prefs, nil).Once()

	w := suite.perform(http.MethodGet, "/api/v1/notifications/preferences", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.NotificationConfigResponse
	suite.decode(w, &resp)
	suite.Equal(dto.StatusOK, resp.Status)
	suite.True(resp.Notificaciones)
	suite.Equal([]dto.CurrencyToggle{
		{Moneda: "PYG", Activa: true},
		{Moneda: "USD", Activa: true},
		{Moneda: "EUR", Activa: false},
	}, resp.Monedas)
}

func (suite *NotificationHandlerTestSuite) TestSaveConfig_Success() {
	suite.mockSubscriptionService.On("SavePreferences", mock.Anything, suite.userID,
		[]domain.CurrencyPreference{{CurrencyCode: "USD", Active: true}, {CurrencyCode: "EUR", Active: false}},
		mock.MatchedBy(func(enabled *bool) bool { return enabled != nil && !*enabled }),
	).Return(nil).Once()

	body := `{"monedas":[{"moneda":"USD","activa":true},{"moneda":"EUR","activa":false}],"notificaciones":false}`
	w := suite.perform(http.MethodPost, "/api/v1/notifications/config", body)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"status":"ok"}`, w.Body.String())
	suite.mockSubscriptionService.AssertExpectations(suite.T())
}

func (suite *NotificationHandlerTestSuite) TestSaveConfig_ToggleOmitted() {
	suite.mockSubscriptionService.On("SavePreferences", mock.Anything, suite.userID,
		[]domain.CurrencyPreference{{CurrencyCode: "USD", Active: true}},
		mock.MatchedBy(func(enabled *bool) bool { return enabled == nil }),
	).Return(nil).Once()

	w := suite.perform(http.MethodPost, "/api/v1/notifications/config", `{"monedas":[{"moneda":"USD","activa":true}]}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockSubscriptionService.AssertExpectations(suite.T())
}

func (suite *NotificationHandlerTestSuite) TestSaveConfig_UnknownCurrency() {
	suite.mockSubscriptionService.On("SavePreferences", mock.Anything, suite.userID, mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: XYZ", apperrors.ErrUnknownCurrency)).Once()

	w := suite.perform(http.MethodPost, "/api/v1/notifications/config", `{"monedas":[{"moneda":"XYZ","activa":true}]}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp dto.StatusResponse
	suite.decode(w, &resp)
	suite.Equal(dto.StatusError, resp.Status)
	suite.Contains(resp.Message, "XYZ")
}

func (suite *NotificationHandlerTestSuite) TestConfig_OtherMethodsNotAllowed() {
	methods := []string{
		http.MethodGet, http.MethodHead, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}
	for _, method := range methods {
		suite.Run(method, func() {
			w := suite.perform(method, "/api/v1/notifications/config", nil)

			suite.Equal(http.StatusMethodNotAllowed, w.Code)
			if method != http.MethodHead {
				suite.JSONEq(`{"status":"error","message":"method not allowed"}`, w.Body.String())
			}
		})
	}
	suite.mockSubscriptionService.AssertNotCalled(suite.T(), "GetPreferences", mock.Anything, mock.Anything)
	suite.mockSubscriptionService.AssertNotCalled(suite.T(), "SavePreferences", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *NotificationHandlerTestSuite) TestPushChannel_RejectsWithoutIdentity() {
	w := suite.performAs("", http.MethodGet, "/api/v1/ws/notifications", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal(0, suite.hub.ConnectionCount(domain.UserGroup(suite.userID)))
}

func (suite *NotificationHandlerTestSuite) TestPushChannel_QueryTokenGreetsAndRegisters() {
	srv := httptest.NewServer(suite.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws/notifications?token=" + suite.generateTestToken(suite.userID)
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	suite.Require().NoError(err)
	defer conn.Close()
	suite.Equal(http.StatusSwitchingProtocols, resp.StatusCode)

	suite.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	var greeting domain.PushMessage
	suite.Require().NoError(conn.ReadJSON(&greeting))
	suite.Equal(domain.PushTypeConnected, greeting.Type)
	suite.Equal(realtime.ConnectedText, greeting.Message)

	suite.Eventually(func() bool {
		return suite.hub.ConnectionCount(domain.UserGroup(suite.userID)) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestNotificationHandler(t *testing.T) {
	suite.Run(t, new(NotificationHandlerTestSuite))
}
