package usecase

import (
	"context"
	"testing"

	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
	"github.com/payethio/payethio-dashboard-go/internal/shared/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var demoAccount = types.DemoConfig{Email: "henokt@payethio.com", Password: "tdashuluqa"}

func newTestAuth(t *testing.T) (*AuthUseCase, *mockSessionRepository) {
	t.Helper()
	sessions := new(mockSessionRepository)
	sessions.On("Create", mock.Anything, mock.AnythingOfType("entity.Session")).
		Return(func(_ context.Context, s entity.Session) entity.Session {
			s.Token = "tok-" + s.Email
			return s
		}, nil).Maybe()

	uc := NewAuthUseCase(sessions, demoAccount, zerolog.New(zerolog.NewTestWriter(t)))
	uc.cost = bcrypt.MinCost
	return uc, sessions
}

func TestLogin_Demo(t *testing.T) {
	uc, sessions := newTestAuth(t)

	s, err := uc.Login(context.Background(), " HenokT@PayEthio.com ", "tdashuluqa")
	require.NoError(t, err)
	assert.Equal(t, entity.UserTypeDemo, s.UserType)
	assert.Equal(t, "henokt@payethio.com", s.Email)
	assert.Equal(t, "tok-henokt@payethio.com", s.Token)
	sessions.AssertNumberOfCalls(t, "Create", 1)
}

func TestLogin_Rejections(t *testing.T) {
	uc, sessions := newTestAuth(t)

	_, err := uc.Login(context.Background(), "", "x")
	assert.ErrorIs(t, err, types.ErrMissingCredentials)

	_, err = uc.Login(context.Background(), demoAccount.Email, "wrong")
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), "nobody@payethio.com", "whatever")
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)

	sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_ThenLogin(t *testing.T) {
	uc, _ := newTestAuth(t)
	ctx := context.Background()

	s, err := uc.Register(ctx, RegisterInput{
		Email:           "owner@shop.et",
		Password:        "hunter22",
		ConfirmPassword: "hunter22",
		Company:         "Shop ET",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.UserTypeRegistered, s.UserType)
	assert.Equal(t, "Shop ET", s.Company)

	s, err = uc.Login(ctx, "owner@shop.et", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, entity.UserTypeRegistered, s.UserType)

	_, err = uc.Login(ctx, "owner@shop.et", "hunter23")
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)

	_, err = uc.Register(ctx, RegisterInput{Email: "OWNER@shop.et", Password: "a", ConfirmPassword: "a", Company: "X"})
	assert.ErrorIs(t, err, types.ErrAccountExists)
}

func TestRegister_Validation(t *testing.T) {
	uc, _ := newTestAuth(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   RegisterInput
		want error
	}{
		{"missing company", RegisterInput{Email: "a@b.et", Password: "p", ConfirmPassword: "p"}, types.ErrIncompleteForm},
		{"mismatch", RegisterInput{Email: "a@b.et", Password: "p", ConfirmPassword: "q", Company: "C"}, types.ErrPasswordMismatch},
		{"bad email", RegisterInput{Email: "not-an-email", Password: "p", ConfirmPassword: "p", Company: "C"}, types.ErrInvalidRecipient},
		{"demo email", RegisterInput{Email: demoAccount.Email, Password: "p", ConfirmPassword: "p", Company: "C"}, types.ErrAccountExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Register(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLogoutAndSession(t *testing.T) {
	uc, sessions := newTestAuth(t)
	ctx := context.Background()

	sessions.On("Get", ctx, "abc").Return(entity.Session{Token: "abc", Email: "a@b.et"}, nil)
	sessions.On("Delete", ctx, "abc").Return(nil)

	s, err := uc.Session(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "a@b.et", s.Email)

	_, err = uc.Session(ctx, "")
	assert.ErrorIs(t, err, types.ErrSessionNotFound)

	require.NoError(t, uc.Logout(ctx, "abc"))
	sessions.AssertExpectations(t)
}
