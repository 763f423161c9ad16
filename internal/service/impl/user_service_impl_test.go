package impl

import (
	"context"
	"testing"
	"time"

	"eshop/internal/domain"
	"eshop/internal/dto"
	"eshop/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type userServiceFixture struct {
	svc      *UserServiceImpl
	store    *memoryStore
	tokens   *TokenServiceImpl
	mailer   *stubMailer
	notifier *stubNotifier
}

func newUserServiceFixture() *userServiceFixture {
	st := newMemoryStore()
	tokens := newTestTokenService(time.Hour)
	mailer := &stubMailer{}
	notifier := &stubNotifier{delivered: true}
	svc := &UserServiceImpl{
		Store:          st,
		Tokens:         tokens,
		Mailer:         mailer,
		Notifier:       notifier,
		ActivationBase: "http://localhost:8000",
	}
	return &userServiceFixture{svc: svc, store: st, tokens: tokens, mailer: mailer, notifier: notifier}
}

func registerReq() dto.RegisterRequest {
	return dto.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "s3cret-pw"}
}

func TestRegisterNewUser(t *testing.T) {
	f := newUserServiceFixture()

	outcome, err := f.svc.Register(context.Background(), registerReq())

	require.NoError(t, err)
	assert.Equal(t, service.RegisterCreated, outcome)

	u := f.store.getUserByEmail("alice@example.com")
	require.NotNil(t, u)
	assert.False(t, u.IsActive)
	assert.Equal(t, u.Email, u.Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("s3cret-pw")))

	// Admin alert fired once, activation email sent to the registrant.
	assert.Len(t, f.notifier.userAlerts, 1)
	require.Len(t, f.mailer.calls, 1)
	assert.Equal(t, []string{"alice@example.com"}, f.mailer.calls[0].to)
	assert.Contains(t, f.mailer.calls[0].body, "http://localhost:8000/api/users/verify/")
}

func TestRegisterMissingFields(t *testing.T) {
	f := newUserServiceFixture()

	outcome, err := f.svc.Register(context.Background(), dto.RegisterRequest{Email: "a@b.c"})

	assert.Equal(t, service.RegisterFailed, outcome)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestRegisterAgainWhileInactive(t *testing.T) {
	f := newUserServiceFixture()
	_, err := f.svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	req := registerReq()
	req.Password = "brand-new-pw"
	outcome, err := f.svc.Register(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, service.RegisterResent, outcome)

	u := f.store.getUserByEmail("alice@example.com")
	require.NotNil(t, u)
	assert.False(t, u.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("brand-new-pw")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("s3cret-pw")))

	// One alert (first creation only), two activation emails, the second a
	// welcome-back.
	assert.Len(t, f.notifier.userAlerts, 1)
	require.Len(t, f.mailer.calls, 2)
	assert.Contains(t, f.mailer.calls[1].body, "Welcome back")
}

func TestRegisterAgainWhileActive(t *testing.T) {
	f := newUserServiceFixture()
	_, err := f.svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	before := f.store.getUserByEmail("alice@example.com")
	require.NotNil(t, before)
	before.IsActive = true
	require.NoError(t, f.store.WithTx(context.Background(), func(tx storeTx) error {
		return tx.Users().Update(context.Background(), before)
	}))

	req := registerReq()
	req.Password = "brand-new-pw"
	outcome, err := f.svc.Register(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, service.RegisterAlreadyActive, outcome)

	after := f.store.getUserByEmail("alice@example.com")
	assert.Equal(t, before.Password, after.Password)
	assert.True(t, after.IsActive)
	assert.Len(t, f.mailer.calls, 1) // no second email
}

func TestRegisterEmailFailureKeepsAccount(t *testing.T) {
	f := newUserServiceFixture()
	f.mailer.err = assert.AnError

	outcome, err := f.svc.Register(context.Background(), registerReq())

	assert.Equal(t, service.RegisterEmailFailed, outcome)
	assert.Error(t, err)

	// No rollback: the account is persisted, still inactive. The next
	// registration attempt is the recovery path.
	u := f.store.getUserByEmail("alice@example.com")
	require.NotNil(t, u)
	assert.False(t, u.IsActive)
}

func TestActivate(t *testing.T) {
	f := newUserServiceFixture()
	_, err := f.svc.Register(context.Background(), registerReq())
	require.NoError(t, err)
	u := f.store.getUserByEmail("alice@example.com")

	token, err := f.tokens.IssueActivation(u.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Activate(context.Background(), token))
	assert.True(t, f.store.getUser(u.ID).IsActive)

	// Re-visiting a valid link re-activates harmlessly.
	require.NoError(t, f.svc.Activate(context.Background(), token))
	assert.True(t, f.store.getUser(u.ID).IsActive)
}

func TestActivateExpiredToken(t *testing.T) {
	f := newUserServiceFixture()
	_, err := f.svc.Register(context.Background(), registerReq())
	require.NoError(t, err)
	u := f.store.getUserByEmail("alice@example.com")

	expired := NewTokenServiceHS256(TokenConfig{
		Issuer:        "eshop-test",
		SigningKey:    []byte("unit-test-signing-key"),
		ActivationTTL: -time.Minute,
		AccessTTL:     time.Hour,
	})
	token, err := expired.IssueActivation(u.ID)
	require.NoError(t, err)

	err = f.svc.Activate(context.Background(), token)
	assert.ErrorIs(t, err, service.ErrTokenExpired)
	assert.False(t, f.store.getUser(u.ID).IsActive)
}

func TestActivateUnknownUser(t *testing.T) {
	f := newUserServiceFixture()

	token, err := f.tokens.IssueActivation(uuid.New())
	require.NoError(t, err)

	err = f.svc.Activate(context.Background(), token)
	assert.Error(t, err)
	assert.False(t, service.IsTokenError(err))
}

func activateUser(t *testing.T, f *userServiceFixture, email string) {
	t.Helper()
	u := f.store.getUserByEmail(email)
	require.NotNil(t, u)
	token, err := f.tokens.IssueActivation(u.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.Activate(context.Background(), token))
}

func TestLogin(t *testing.T) {
	f := newUserServiceFixture()
	_, err := f.svc.Register(context.Background(), registerReq())
	require.NoError(t, err)
	activateUser(t, f, "alice@example.com")

	res, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: "alice@example.com", Password: "s3cret-pw"})

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", res.Username)
	assert.NotEmpty(t, res.Token)

	got, err := f.tokens.VerifyAccess(res.Token)
	require.NoError(t, err)
	assert.Equal(t, f.store.getUserByEmail("alice@example.com").ID, got)
}

func TestLoginInactiveAccount(t *testing.T) {
	f := newUserServiceFixture()
	_, err := f.svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = f.svc.Login(context.Background(), dto.LoginRequest{Email: "alice@example.com", Password: "s3cret-pw"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newUserServiceFixture()
	_, err := f.svc.Register(context.Background(), registerReq())
	require.NoError(t, err)
	activateUser(t, f, "alice@example.com")

	_, err = f.svc.Login(context.Background(), dto.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	f := newUserServiceFixture()
	_, err := f.svc.Register(context.Background(), registerReq())
	require.NoError(t, err)
	activateUser(t, f, "alice@example.com")
	u := f.store.getUserByEmail("alice@example.com")

	res, err := f.svc.UpdateProfile(context.Background(), u.ID, dto.UpdateProfileRequest{
		Name:     "Alice Smith",
		Email:    "alice.smith@example.com",
		Password: "rotated-pw",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice.smith@example.com", res.Username)
	assert.NotEmpty(t, res.Token)

	updated := f.store.getUser(u.ID)
	assert.Equal(t, "Alice Smith", updated.Name)
	assert.Equal(t, updated.Email, updated.Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("rotated-pw")))
}
