package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/currency_exchange_app/internal/apperrors"
	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/SscSPs/currency_exchange_app/internal/core/services"
	"github.com/SscSPs/currency_exchange_app/internal/dto"
	"github.com/SscSPs/currency_exchange_app/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  *services.UserService
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Username: " operator1 ", Password: "s3cret-pass", Name: "Operator One"}

	suite.mockRepo.On("FindUserByUsername", ctx, "operator1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "operator1" && u.PasswordHash != "s3cret-pass" && u.NotificationsEnabled
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, "admin")

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.Equal("admin", user.CreatedBy)
	suite.True(utils.CheckPasswordHash("s3cret-pass", user.PasswordHash))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserByUsername", ctx, "operator1").Return(&domain.User{UserID: "u1", Username: "operator1"}, nil).Once()

	_, err := suite.service.CreateUser(ctx, dto.CreateUserRequest{Username: "operator1", Password: "whatever1"}, "admin")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	deletedAt := time.Now()

	suite.mockRepo.On("FindUserByUsername", ctx, "alice").Return(&domain.User{UserID: "u1", Username: "alice", PasswordHash: hash}, nil)
	suite.mockRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound)
	suite.mockRepo.On("FindUserByUsername", ctx, "gone").Return(&domain.User{UserID: "u2", PasswordHash: hash, DeletedAt: &deletedAt}, nil)

	user, err := suite.service.AuthenticateUser(ctx, "alice", "correct-horse")
	suite.Require().NoError(err)
	suite.Equal("u1", user.UserID)

	for _, tc := range []struct{ username, password string }{
		{"alice", "wrong"},
		{"ghost", "correct-horse"},
		{"gone", "correct-horse"},
	} {
		_, err := suite.service.AuthenticateUser(ctx, tc.username, tc.password)
		suite.ErrorIs(err, services.ErrInvalidCredentials, tc.username)
		suite.ErrorIs(err, apperrors.ErrUnauthorized, tc.username)
	}
}

func (suite *UserServiceTestSuite) TestUpdateUser_NoChangesSkipsWrite() {
	ctx := context.Background()
	name := "Same"
	suite.mockRepo.On("FindUserByID", ctx, "u1").Return(&domain.User{UserID: "u1", Name: "Same"}, nil).Once()

	user, err := suite.service.UpdateUser(ctx, "u1", dto.UpdateUserRequest{Name: &name}, "admin")

	suite.Require().NoError(err)
	suite.Equal("Same", user.Name)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_ChangesEmail() {
	ctx := context.Background()
	email := "new@example.com"
	suite.mockRepo.On("FindUserByID", ctx, "u1").Return(&domain.User{UserID: "u1", Email: "old@example.com"}, nil).Once()
	suite.mockRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == email && u.LastUpdatedBy == "admin"
	})).Return(nil).Once()

	user, err := suite.service.UpdateUser(ctx, "u1", dto.UpdateUserRequest{Email: &email}, "admin")

	suite.Require().NoError(err)
	suite.Equal(email, user.Email)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeleteUser_Self() {
	err := suite.service.DeleteUser(context.Background(), "u1", "u1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkUserDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDeleteUser_Success() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserByID", ctx, "u2").Return(&domain.User{UserID: "u2"}, nil).Once()
	suite.mockRepo.On("MarkUserDeleted", ctx, "u2", mock.AnythingOfType("time.Time"), "u1").Return(nil).Once()

	err := suite.service.DeleteUser(ctx, "u2", "u1")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
