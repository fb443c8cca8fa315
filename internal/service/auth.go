package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"storefront/internal/domain"
	"storefront/internal/mailer"
	"storefront/internal/store"
	"storefront/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// ResetCodeTTL is how long an emailed reset code stays usable
const ResetCodeTTL = 10 * time.Minute

// AuthService handles accounts, sessions and password resets
type AuthService struct {
	users  UserRepository
	mail   mailer.Sender
	secret string
	now    func() time.Time
	code   func() (string, error)
}

// NewAuthService creates an AuthService that signs tokens with jwtSecret
func NewAuthService(users UserRepository, mail mailer.Sender, jwtSecret string) *AuthService {
	return &AuthService{
		users:  users,
		mail:   mail,
		secret: jwtSecret,
		now:    time.Now,
		code:   newResetCode,
	}
}

// RegisterInput holds the fields of a new customer account
type RegisterInput struct {
	Username    string
	Email       string
	PhoneNumber string
	Password    string
}

// Session is what a successful login hands back to the client
type Session struct {
	Token string
	User  *domain.User
}

// Register creates a customer account
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	return s.createUser(ctx, &domain.User{
		Username:    strings.TrimSpace(in.Username),
		Email:       normalizeEmail(in.Email),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Role:        domain.RoleCustomer,
	}, in.Password)
}

// RegisterAdmin creates the single admin account; a second admin is refused
func (s *AuthService) RegisterAdmin(ctx context.Context, name, email, password string) (*domain.User, error) {
	exists, err := s.users.AdminExists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAdminExists
	}
	return s.createUser(ctx, &domain.User{
		Username: strings.TrimSpace(name),
		Email:    normalizeEmail(email),
		Role:     domain.RoleAdmin,
	}, password)
}

func (s *AuthService) createUser(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	if _, err := s.users.FindByEmail(ctx, user.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hash)
	if err := s.users.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same email
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

// Login authenticates any account
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	return s.login(ctx, email, password, false)
}

// AdminLogin authenticates admin accounts only
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*Session, error) {
	return s.login(ctx, email, password, true)
}

func (s *AuthService) login(ctx context.Context, email, password string, adminOnly bool) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if adminOnly && !user.IsAdmin() {
		return nil, ErrInvalidCredentials
	}
	token, err := utils.GenerateJWT(user.ID, user.Role, s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Session{Token: token, User: user}, nil
}

// User loads an account by id
func (s *AuthService) User(ctx context.Context, id uint) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// RequestReset issues and mails a reset code. Unknown addresses succeed silently
// so the endpoint cannot be used to probe for accounts.
func (s *AuthService) RequestReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil
	} else if err != nil {
		return err
	}
	code, err := s.code()
	if err != nil {
		return fmt.Errorf("generate reset code: %w", err)
	}
	if err := s.users.SetResetCode(ctx, user.ID, code, s.now().Add(ResetCodeTTL)); err != nil {
		return err
	}
	return s.mail.SendResetCode(ctx, user.Email, code, ResetCodeTTL)
}

// VerifyCode checks a reset code without consuming it
func (s *AuthService) VerifyCode(ctx context.Context, email, code string) error {
	_, err := s.checkResetCode(ctx, email, code)
	return err
}

// ResetPassword overwrites the password once the code checks out and clears the code
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := s.checkResetCode(ctx, email, code)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, user.ID, string(hash))
}

// checkResetCode drops the pending code on expiry or mismatch, so every failed
// attempt requires a new request.
func (s *AuthService) checkResetCode(ctx context.Context, email, code string) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidResetCode
	} else if err != nil {
		return nil, err
	}
	if user.ResetCode == nil || user.ResetExpires == nil {
		return nil, ErrInvalidResetCode
	}
	valid := s.now().Before(*user.ResetExpires) &&
		subtle.ConstantTimeCompare([]byte(*user.ResetCode), []byte(strings.TrimSpace(code))) == 1
	if !valid {
		if err := s.users.ClearResetCode(ctx, user.ID); err != nil {
			return nil, err
		}
		return nil, ErrInvalidResetCode
	}
	return user, nil
}

// newResetCode returns a random five digit code
func newResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+10000), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
