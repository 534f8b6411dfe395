package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"time"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portssvc "github.com/SscSPs/currency_exchange_app/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_app/internal/handlers"
	"github.com/SscSPs/currency_exchange_app/internal/middleware"
	"github.com/SscSPs/currency_exchange_app/internal/platform/config"
	"github.com/SscSPs/currency_exchange_app/internal/realtime"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// handlerSuite wires the real router to mocked services.
type handlerSuite struct {
	suite.Suite
	router *gin.Engine
	cfg    *config.Config
	hub    *realtime.Hub
	userID string

	mockRoleService         *MockRoleService
	mockUserService         *MockUserService
	mockTokenService        *MockTokenService
	mockExchangeRateService *MockExchangeRateService
	mockSubscriptionService *MockSubscriptionService
	mockSimulationService   *MockSimulationService
	mockOperativeClients    *MockOperativeClientService
}

func (suite *handlerSuite) services() *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Role:            suite.mockRoleService,
		User:            suite.mockUserService,
		Token:           suite.mockTokenService,
		ExchangeRate:    suite.mockExchangeRateService,
		Subscription:    suite.mockSubscriptionService,
		Simulation:      suite.mockSimulationService,
		OperativeClient: suite.mockOperativeClients,
	}
}

func (suite *handlerSuite) newRouter(deps handlers.Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	handlers.RegisterRoutes(r, suite.cfg, suite.services(), deps)
	return r
}

func (suite *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.cfg = &config.Config{JWTSecret: testJWTSecret, IsProduction: true}
	suite.userID = uuid.NewString()

	suite.mockRoleService = new(MockRoleService)
	suite.mockUserService = new(MockUserService)
	suite.mockTokenService = new(MockTokenService)
	suite.mockExchangeRateService = new(MockExchangeRateService)
	suite.mockSubscriptionService = new(MockSubscriptionService)
	suite.mockSimulationService = new(MockSimulationService)
	suite.mockOperativeClients = new(MockOperativeClientService)

	suite.hub = realtime.NewHub(nil, nil)
	wsServer := realtime.NewServer(suite.hub, suite.mockSubscriptionService, realtime.Options{}, nil)
	suite.router = suite.newRouter(handlers.Dependencies{WSServer: wsServer})
}

// generateTestToken creates a dummy JWT for testing.
func (suite *handlerSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "cea-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

// perform sends an authenticated request. A string body is sent verbatim, anything else as JSON.
func (suite *handlerSuite) perform(method, path string, body any) *httptest.ResponseRecorder {
	return suite.performAs(suite.userID, method, path, body)
}

func (suite *handlerSuite) performAs(userID, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *handlerSuite) decode(w *httptest.ResponseRecorder, out any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}

func (suite *handlerSuite) allow(perms ...domain.Permission) {
	for _, p := range perms {
		suite.mockRoleService.On("UserHasPermission", mock.Anything, suite.userID, p).Return(true, nil)
	}
}

func (suite *handlerSuite) deny(perm domain.Permission) {
	suite.mockRoleService.On("UserHasPermission", mock.Anything, suite.userID, perm).Return(false, nil)
}
