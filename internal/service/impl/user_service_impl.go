package impl

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"eshop/internal/domain"
	"eshop/internal/dto"
	"eshop/internal/notify"
	"eshop/internal/observability/metrics"
	"eshop/internal/service"
	"eshop/internal/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type userNotifier interface {
	NewUserAlert(ctx context.Context, u *domain.User) bool
}

type UserServiceImpl struct {
	Store          dataStore
	Tokens         service.TokenService
	Mailer         service.Mailer
	Notifier       userNotifier
	ActivationBase string // public base URL that activation links point at
}

func NewUserServiceImpl(st *store.Store, tokens service.TokenService, mailer service.Mailer, notifier *notify.Notifier, publicBaseURL string) *UserServiceImpl {
	return &UserServiceImpl{
		Store:          gormStoreAdapter{store: st},
		Tokens:         tokens,
		Mailer:         mailer,
		Notifier:       notifier,
		ActivationBase: publicBaseURL,
	}
}

// Register runs the create-or-reactivate state machine. There is no existence
// pre-check: the insert is attempted first and the store's uniqueness
// constraint on email/username is the sole duplicate detector, so concurrent
// attempts cannot race between check and insert.
func (s *UserServiceImpl) Register(ctx context.Context, r dto.RegisterRequest) (service.RegisterOutcome, error) {
	if r.Name == "" || r.Email == "" || r.Password == "" {
		metrics.RegistrationsTotal.WithLabelValues("failed").Inc()
		return service.RegisterFailed, ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), bcrypt.DefaultCost)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("failed").Inc()
		return service.RegisterFailed, err
	}

	var (
		user    *domain.User
		outcome service.RegisterOutcome
		kind    notify.ActivationKind
		created bool
	)
	err = s.Store.WithTx(ctx, func(tx storeTx) error {
		now := time.Now().UTC()
		nu := &domain.User{
			ID:    uuid.New(),
			Email: r.Email,
			// Username mirrors email on every write path.
			Username:  r.Email,
			Name:      r.Name,
			Password:  string(hash),
			IsActive:  false,
			CreatedAt: now,
			UpdatedAt: now,
		}
		err := tx.Users().Create(ctx, nu)
		if err == nil {
			user, created, kind, outcome = nu, true, notify.NewRegister, service.RegisterCreated
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicateUser) {
			return err
		}

		existing, gerr := tx.Users().GetByEmail(ctx, r.Email)
		if gerr != nil {
			return gerr
		}
		if existing.IsActive {
			outcome = service.RegisterAlreadyActive
			return nil
		}
		// Inactive duplicate: the latest registration attempt owns the credential.
		existing.Password = string(hash)
		existing.UpdatedAt = now
		if uerr := tx.Users().Update(ctx, existing); uerr != nil {
			return uerr
		}
		user, kind, outcome = existing, notify.Reactivation, service.RegisterResent
		return nil
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("failed").Inc()
		return service.RegisterFailed, err
	}
	if outcome == service.RegisterAlreadyActive {
		metrics.RegistrationsTotal.WithLabelValues("already_active").Inc()
		return outcome, nil
	}

	// Best-effort operator alert for first-time creations. Outcome is discarded
	// deliberately; the notifier already logged any failure.
	if created {
		s.Notifier.NewUserAlert(ctx, user)
	}

	if err := s.sendActivationEmail(ctx, user, kind); err != nil {
		// The account stays persisted; the user's next registration attempt is
		// the recovery path for a lost email.
		metrics.RegistrationsTotal.WithLabelValues("email_failed").Inc()
		return service.RegisterEmailFailed, err
	}

	switch outcome {
	case service.RegisterCreated:
		metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	case service.RegisterResent:
		metrics.RegistrationsTotal.WithLabelValues("resent").Inc()
	}
	return outcome, nil
}

func (s *UserServiceImpl) sendActivationEmail(ctx context.Context, u *domain.User, kind notify.ActivationKind) error {
	token, err := s.Tokens.IssueActivation(u.ID)
	if err != nil {
		return err
	}
	link := strings.TrimSuffix(s.ActivationBase, "/") + "/api/users/verify/" + token
	subject, body := notify.ComposeActivation(kind, u.Name, link)
	if err := s.Mailer.Send(ctx, subject, []string{u.Email}, body); err != nil {
		slog.Error("sending activation email", "error", err, "user_id", u.ID)
		metrics.EmailsSentTotal.WithLabelValues("activation", "failure").Inc()
		return err
	}
	metrics.EmailsSentTotal.WithLabelValues("activation", "success").Inc()
	return nil
}

// Activate verifies the emailed token and flips the account active. Verifying
// the same unexpired token again re-activates harmlessly.
func (s *UserServiceImpl) Activate(ctx context.Context, token string) error {
	userID, err := s.Tokens.VerifyActivation(token)
	if err != nil {
		metrics.ActivationsTotal.WithLabelValues("invalid_token").Inc()
		return err
	}
	err = s.Store.WithTx(ctx, func(tx storeTx) error {
		u, err := tx.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		u.IsActive = true
		u.UpdatedAt = time.Now().UTC()
		return tx.Users().Update(ctx, u)
	})
	if err != nil {
		metrics.ActivationsTotal.WithLabelValues("failed").Inc()
		return err
	}
	metrics.ActivationsTotal.WithLabelValues("success").Inc()
	return nil
}

func (s *UserServiceImpl) Login(ctx context.Context, r dto.LoginRequest) (*dto.UserWithToken, error) {
	if r.Email == "" || r.Password == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	var out *dto.UserWithToken
	err := s.Store.WithTx(ctx, func(tx storeTx) error {
		u, err := tx.Users().GetByEmail(ctx, r.Email)
		if err != nil {
			return domain.ErrInvalidCredentials // don't leak whether the account exists
		}
		if !u.IsActive {
			return domain.ErrInvalidCredentials
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(r.Password)) != nil {
			return domain.ErrInvalidCredentials
		}
		token, err := s.Tokens.IssueAccess(u.ID)
		if err != nil {
			return err
		}
		resp := dto.FromUserWithToken(u, token)
		out = &resp
		return nil
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return out, nil
}

func (s *UserServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user *domain.User
	err := s.Store.WithTx(ctx, func(tx storeTx) error {
		u, err := tx.Users().GetByID(ctx, id)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	return user, err
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, id uuid.UUID, r dto.UpdateProfileRequest) (*dto.UserWithToken, error) {
	if r.Name == "" || r.Email == "" {
		return nil, ErrMissingFields
	}

	var out *dto.UserWithToken
	err := s.Store.WithTx(ctx, func(tx storeTx) error {
		u, err := tx.Users().GetByID(ctx, id)
		if err != nil {
			return err
		}
		u.Name = r.Name
		u.Email = r.Email
		u.Username = r.Email // keep the two fields in lockstep
		if r.Password != "" {
			hash, herr := bcrypt.GenerateFromPassword([]byte(r.Password), bcrypt.DefaultCost)
			if herr != nil {
				return herr
			}
			u.Password = string(hash)
		}
		u.UpdatedAt = time.Now().UTC()
		if err := tx.Users().Update(ctx, u); err != nil {
			return err
		}
		token, err := s.Tokens.IssueAccess(u.ID)
		if err != nil {
			return err
		}
		resp := dto.FromUserWithToken(u, token)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *UserServiceImpl) List(ctx context.Context) ([]dto.UserResponse, error) {
	var out []dto.UserResponse
	err := s.Store.WithTx(ctx, func(tx storeTx) error {
		users, err := tx.Users().List(ctx)
		if err != nil {
			return err
		}
		out = make([]dto.UserResponse, 0, len(users))
		for i := range users {
			out = append(out, dto.FromUser(&users[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
