package auth

import (
	"context"
	"testing"

	"nam3land/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	if user != nil {
		user.ID = 42
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, userID int64, name, phone string) (*domain.User, error) {
	args := m.Called(ctx, userID, name, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func TestService_Register_NewCustomer(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockTokenIssuer)
	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(nil, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "jane@example.com" && u.Role == domain.RoleCustomer && u.PasswordHash != ""
	})).Return(nil)
	tokens.On("GenerateToken", int64(42), "customer").Return("tok", nil)

	svc := NewService(users, tokens)
	user, token, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "  Jane@Example.com ",
		Password: "secret123",
		Name:     "Jane",
	})

	assert.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Empty(t, user.PasswordHash)
	users.AssertExpectations(t)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "jane@example.com").
		Return(&domain.User{ID: 1, Email: "jane@example.com"}, nil)

	svc := NewService(users, new(MockTokenIssuer))
	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "jane@example.com",
		Password: "secret123",
		Name:     "Jane",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestService_Login_Success(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	users := new(MockUserRepository)
	tokens := new(MockTokenIssuer)
	users.On("GetByEmail", mock.Anything, "jane@example.com").
		Return(&domain.User{ID: 42, Email: "jane@example.com", PasswordHash: string(hash), Role: domain.RoleCustomer}, nil)
	tokens.On("GenerateToken", int64(42), "customer").Return("tok", nil)

	svc := NewService(users, tokens)
	user, token, err := svc.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Empty(t, user.PasswordHash)
}

func TestService_Login_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "jane@example.com").
		Return(&domain.User{ID: 42, PasswordHash: string(hash)}, nil)

	svc := NewService(users, new(MockTokenIssuer))
	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	svc := NewService(users, new(MockTokenIssuer))
	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_UpdateProfile_NothingToUpdate(t *testing.T) {
	svc := NewService(new(MockUserRepository), new(MockTokenIssuer))
	_, err := svc.UpdateProfile(context.Background(), 42, UpdateProfileRequest{})

	assert.ErrorIs(t, err, ErrValidation)
}
