package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
	"github.com/payethio/payethio-dashboard-go/internal/domain/repository"
	"github.com/payethio/payethio-dashboard-go/internal/shared/types"
)

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Company         string `json:"company"`
}

type account struct {
	company string
	hash    []byte
}

// AuthUseCase implementa o login de demonstração e o cadastro simplificado. Não é um
// sistema de autenticação real: as contas vivem apenas em memória.
type AuthUseCase struct {
	sessions repository.SessionRepository
	demo     types.DemoConfig
	cost     int
	logger   zerolog.Logger

	mu       sync.RWMutex
	accounts map[string]account
}

// NewAuthUseCase creates a new auth use case.
func NewAuthUseCase(sessions repository.SessionRepository, demo types.DemoConfig, logger zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{
		sessions: sessions,
		demo:     demo,
		cost:     bcrypt.DefaultCost,
		logger:   logger,
		accounts: make(map[string]account),
	}
}

// Login checks the credentials against the demo account first and then against the
// registered accounts.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (entity.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return entity.Session{}, types.ErrMissingCredentials
	}

	if uc.isDemo(email, password) {
		uc.logger.Info().Str("email", email).Msg("Demo login")
		return uc.sessions.Create(ctx, entity.Session{Email: email, UserType: entity.UserTypeDemo})
	}

	uc.mu.RLock()
	acc, ok := uc.accounts[email]
	uc.mu.RUnlock()
	if !ok || bcrypt.CompareHashAndPassword(acc.hash, []byte(password)) != nil {
		uc.logger.Warn().Str("email", email).Msg("Rejected login")
		return entity.Session{}, types.ErrInvalidCredentials
	}

	return uc.sessions.Create(ctx, entity.Session{
		Email:    email,
		Company:  acc.company,
		UserType: entity.UserTypeRegistered,
	})
}

// Register cria uma conta nova (sem dados de exemplo) e já abre a sessão.
func (uc *AuthUseCase) Register(ctx context.Context, in RegisterInput) (entity.Session, error) {
	email := normalizeEmail(in.Email)
	company := strings.TrimSpace(in.Company)
	if email == "" || in.Password == "" || in.ConfirmPassword == "" || company == "" {
		return entity.Session{}, types.ErrIncompleteForm
	}
	if in.Password != in.ConfirmPassword {
		return entity.Session{}, types.ErrPasswordMismatch
	}
	if err := ValidateEmailOptions(EmailOptions{To: email}); err != nil {
		return entity.Session{}, err
	}
	if strings.EqualFold(email, uc.demo.Email) {
		return entity.Session{}, types.ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return entity.Session{}, fmt.Errorf("error hashing password: %w", err)
	}

	uc.mu.Lock()
	if _, exists := uc.accounts[email]; exists {
		uc.mu.Unlock()
		return entity.Session{}, types.ErrAccountExists
	}
	uc.accounts[email] = account{company: company, hash: hash}
	uc.mu.Unlock()

	uc.logger.Info().Str("email", email).Str("company", company).Msg("Account registered")
	return uc.sessions.Create(ctx, entity.Session{
		Email:    email,
		Company:  company,
		UserType: entity.UserTypeRegistered,
	})
}

// Logout ends the session identified by token.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	return uc.sessions.Delete(ctx, token)
}

// Session resolves a session token.
func (uc *AuthUseCase) Session(ctx context.Context, token string) (entity.Session, error) {
	if token == "" {
		return entity.Session{}, types.ErrSessionNotFound
	}
	return uc.sessions.Get(ctx, token)
}

func (uc *AuthUseCase) isDemo(email, password string) bool {
	if uc.demo.Email == "" || uc.demo.Password == "" {
		return false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(normalizeEmail(uc.demo.Email)))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(uc.demo.Password))
	return emailOK&passOK == 1
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
