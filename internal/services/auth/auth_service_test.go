package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/threadline/pos-service/internal/domain"
	"github.com/threadline/pos-service/internal/domain/ports"
	"golang.org/x/crypto/bcrypt"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...ports.Field)  {}
func (nopLogger) Error(string, ...ports.Field) {}
func (nopLogger) Warn(string, ...ports.Field)  {}
func (nopLogger) Debug(string, ...ports.Field) {}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, tx ports.DBTX, username string) (*domain.User, error) {
	args := m.Called(ctx, tx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

const testSecret = "test-secret"

func testUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           12,
		ShopID:       4,
		Username:     "manager1",
		PasswordHash: string(hash),
		Role:         domain.RoleManager,
	}
}

func TestLogin_TokenRoundTrip(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewService(users, testSecret, time.Hour, nopLogger{})

	users.On("GetByUsername", mock.Anything, mock.Anything, "manager1").
		Return(testUser(t, "correct horse"), nil)

	result, err := svc.Login(context.Background(), "manager1", "correct horse")

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), result.ExpiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(result.Token)

	require.NoError(t, err)
	assert.Equal(t, int64(12), claims.UserID)
	assert.Equal(t, int64(4), claims.ShopID)
	assert.Equal(t, "manager1", claims.Username)
	assert.Equal(t, domain.RoleManager, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewService(users, testSecret, time.Hour, nopLogger{})

	users.On("GetByUsername", mock.Anything, mock.Anything, "manager1").
		Return(testUser(t, "correct horse"), nil)

	_, err := svc.Login(context.Background(), "manager1", "battery staple")

	assert.Equal(t, domain.ErrorCodeAuthBadCreds, domain.GetErrorCode(err))
}

func TestLogin_UnknownUserSameError(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewService(users, testSecret, time.Hour, nopLogger{})

	users.On("GetByUsername", mock.Anything, mock.Anything, "ghost").
		Return(nil, domain.ErrUserNotFound)

	_, err := svc.Login(context.Background(), "ghost", "whatever")

	// indistinguishable from a wrong password
	assert.Equal(t, domain.ErrorCodeAuthBadCreds, domain.GetErrorCode(err))
}

func TestLogin_MissingCredentials(t *testing.T) {
	svc := NewService(new(mockUserRepo), testSecret, time.Hour, nopLogger{})

	_, err := svc.Login(context.Background(), "", "pw")
	assert.Equal(t, domain.ErrorCodeValidationMissingField, domain.GetErrorCode(err))

	_, err = svc.Login(context.Background(), "user", "")
	assert.Equal(t, domain.ErrorCodeValidationMissingField, domain.GetErrorCode(err))
}

func TestValidateToken_WrongSecret(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByUsername", mock.Anything, mock.Anything, "manager1").
		Return(testUser(t, "pw"), nil)

	issuer := NewService(users, testSecret, time.Hour, nopLogger{})
	result, err := issuer.Login(context.Background(), "manager1", "pw")
	require.NoError(t, err)

	verifier := NewService(new(mockUserRepo), "other-secret", time.Hour, nopLogger{})
	_, err = verifier.ValidateToken(result.Token)

	assert.Equal(t, domain.ErrorCodeAuthInvalid, domain.GetErrorCode(err))
}

func TestValidateToken_Expired(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByUsername", mock.Anything, mock.Anything, "manager1").
		Return(testUser(t, "pw"), nil)

	svc := NewService(users, testSecret, -time.Minute, nopLogger{})
	result, err := svc.Login(context.Background(), "manager1", "pw")
	require.NoError(t, err)

	_, err = svc.ValidateToken(result.Token)

	assert.Equal(t, domain.ErrorCodeAuthInvalid, domain.GetErrorCode(err))
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewService(new(mockUserRepo), testSecret, time.Hour, nopLogger{})

	_, err := svc.ValidateToken("not-a-token")

	assert.Equal(t, domain.ErrorCodeAuthInvalid, domain.GetErrorCode(err))
}
