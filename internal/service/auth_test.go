package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain"
	"storefront/internal/store/storetest"
	"storefront/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to, code string
	err      error
}

func (m *fakeMailer) SendResetCode(_ context.Context, to, code string, _ time.Duration) error {
	m.to, m.code = to, code
	return m.err
}

func newAuth(t *testing.T) (*AuthService, *storetest.DB, *fakeMailer) {
	t.Helper()
	db := storetest.New()
	mail := &fakeMailer{}
	return NewAuthService(db.Users(), mail, "test-secret"), db, mail
}

func register(t *testing.T, s *AuthService, email string) *domain.User {
	t.Helper()
	u, err := s.Register(context.Background(), RegisterInput{Username: "alice", Email: email, Password: "password123"})
	require.NoError(t, err)
	return u
}

func TestRegister_HashesAndDefaultsRole(t *testing.T) {
	s, _, _ := newAuth(t)
	u := register(t, s, " Alice@Example.com ")

	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, domain.RoleCustomer, u.Role)
	assert.NotEqual(t, "password123", u.Password)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s, _, _ := newAuth(t)
	register(t, s, "a@example.com")

	_, err := s.Register(context.Background(), RegisterInput{Username: "bob", Email: "A@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegisterAdmin_OnlyOnce(t *testing.T) {
	s, _, _ := newAuth(t)
	ctx := context.Background()

	admin, err := s.RegisterAdmin(ctx, "root", "root@example.com", "password123")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	_, err = s.RegisterAdmin(ctx, "other", "other@example.com", "password123")
	assert.ErrorIs(t, err, ErrAdminExists)
}

func TestLogin(t *testing.T) {
	s, _, _ := newAuth(t)
	u := register(t, s, "a@example.com")
	ctx := context.Background()

	sess, err := s.Login(ctx, "a@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, sess.User.ID)

	claims, err := utils.ParseJWT(sess.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, domain.RoleCustomer, claims.Role)

	_, err = s.Login(ctx, "a@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminLogin_RejectsCustomers(t *testing.T) {
	s, _, _ := newAuth(t)
	register(t, s, "a@example.com")
	ctx := context.Background()

	_, err := s.AdminLogin(ctx, "a@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.RegisterAdmin(ctx, "root", "root@example.com", "password123")
	require.NoError(t, err)
	sess, err := s.AdminLogin(ctx, "root@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
}

func TestPasswordReset_FullFlow(t *testing.T) {
	s, _, mail := newAuth(t)
	register(t, s, "a@example.com")
	ctx := context.Background()

	require.NoError(t, s.RequestReset(ctx, "a@example.com"))
	assert.Equal(t, "a@example.com", mail.to)
	assert.Len(t, mail.code, 5)

	require.NoError(t, s.VerifyCode(ctx, "a@example.com", mail.code))
	require.NoError(t, s.ResetPassword(ctx, "a@example.com", mail.code, "newpassword1"))

	_, err := s.Login(ctx, "a@example.com", "newpassword1")
	require.NoError(t, err)
	_, err = s.Login(ctx, "a@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// The code is single use
	assert.ErrorIs(t, s.VerifyCode(ctx, "a@example.com", mail.code), ErrInvalidResetCode)
}

func TestRequestReset_UnknownEmailIsSilent(t *testing.T) {
	s, _, mail := newAuth(t)
	require.NoError(t, s.RequestReset(context.Background(), "ghost@example.com"))
	assert.Empty(t, mail.to)
}

func TestRequestReset_MailFailure(t *testing.T) {
	s, _, mail := newAuth(t)
	register(t, s, "a@example.com")
	mail.err = errors.New("smtp down")

	assert.Error(t, s.RequestReset(context.Background(), "a@example.com"))
}

func TestVerifyCode_ExpiredIsCleared(t *testing.T) {
	s, db, mail := newAuth(t)
	u := register(t, s, "a@example.com")
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.RequestReset(ctx, "a@example.com"))
	s.now = func() time.Time { return now.Add(ResetCodeTTL + time.Second) }

	assert.ErrorIs(t, s.VerifyCode(ctx, "a@example.com", mail.code), ErrInvalidResetCode)
	stored, err := db.Users().FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ResetCode)
	assert.Nil(t, stored.ResetExpires)
}

func TestVerifyCode_MismatchClearsCode(t *testing.T) {
	s, _, mail := newAuth(t)
	register(t, s, "a@example.com")
	ctx := context.Background()
	s.code = func() (string, error) { return "12345", nil }

	require.NoError(t, s.RequestReset(ctx, "a@example.com"))
	assert.ErrorIs(t, s.VerifyCode(ctx, "a@example.com", "54321"), ErrInvalidResetCode)
	assert.ErrorIs(t, s.ResetPassword(ctx, "a@example.com", mail.code, "newpassword1"), ErrInvalidResetCode)
}

func TestVerifyCode_NoPendingCode(t *testing.T) {
	s, _, _ := newAuth(t)
	register(t, s, "a@example.com")
	assert.ErrorIs(t, s.VerifyCode(context.Background(), "a@example.com", "12345"), ErrInvalidResetCode)
	assert.ErrorIs(t, s.VerifyCode(context.Background(), "ghost@example.com", "12345"), ErrInvalidResetCode)
}

func TestNewResetCode_Range(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := newResetCode()
		require.NoError(t, err)
		require.Len(t, code, 5)
		assert.GreaterOrEqual(t, code, "10000")
		assert.LessOrEqual(t, code, "99999")
	}
}
