package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/freshcart/internal/hash"
	"github.com/Skotchmaster/freshcart/internal/logging"
	"github.com/Skotchmaster/freshcart/internal/models"
	"github.com/Skotchmaster/freshcart/internal/repo"
	"github.com/Skotchmaster/freshcart/internal/tokens"
	"github.com/Skotchmaster/freshcart/internal/transport"
)

type AuthService struct {
	Repo          *repo.GormRepo
	Events        Publisher
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type AuthResult struct {
	User   *models.User
	Tokens transport.TokenPair
}

var timeNow = func() time.Time { return time.Now().UTC() }

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// checkContactUnique rejects an email or phone that belongs to another user.
func checkContactUnique(ctx context.Context, r *repo.GormRepo, email, phone string, except uuid.UUID) error {
	if email != "" {
		taken, err := r.EmailTaken(ctx, email, except)
		if err != nil {
			return err
		}
		if taken {
			return conflictf("Email already registered")
		}
	}
	if phone != "" {
		taken, err := r.PhoneTaken(ctx, phone, except)
		if err != nil {
			return err
		}
		if taken {
			return conflictf("Phone number already registered")
		}
	}
	return nil
}

// duplicateContact names the field behind a unique index violation that
// slipped past checkContactUnique.
func duplicateContact(ctx context.Context, r *repo.GormRepo, email, phone string) error {
	if err := checkContactUnique(ctx, r, email, phone, uuid.Nil); err != nil {
		return err
	}
	return conflictf("User already exists")
}

func (s *AuthService) Signup(ctx context.Context, req transport.SignupRequest) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	email := normalizeEmail(req.Email)
	phone := strings.TrimSpace(req.Phone)
	if err := checkContactUnique(ctx, s.Repo, email, phone, uuid.Nil); err != nil {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("signup_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        phone,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
		IsActive:     true,
		TotalSpent:   decimal.Zero,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateContact(ctx, s.Repo, email, phone)
		}
		return nil, err
	}

	res, err := s.issue(ctx, s.Repo, user)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, TopicUserEvents, user.ID.String(), map[string]any{
		"type":   "user_registered",
		"userId": user.ID,
		"email":  user.Email,
	})
	return res, nil
}

func (s *AuthService) Login(ctx context.Context, login, password string) (*AuthResult, error) {
	login = strings.TrimSpace(login)
	if strings.Contains(login, "@") {
		login = normalizeEmail(login)
	}

	user, err := s.Repo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newErr(ErrUnauthorized, "Invalid credentials")
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, newErr(ErrUnauthorized, "Invalid credentials")
	}
	if !user.IsActive {
		return nil, newErr(ErrUnauthorized, "Account is deactivated")
	}

	now := timeNow()
	if err := s.Repo.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now

	return s.issue(ctx, s.Repo, user)
}

// Refresh rotates a refresh token: the presented one is revoked and a new
// pair is issued in the same transaction.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, newErr(ErrUnauthorized, "Invalid refresh token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, newErr(ErrUnauthorized, "Invalid refresh token")
	}

	var res *AuthResult
	err = s.Repo.WithTx(ctx, func(tx *repo.GormRepo) error {
		ok, err := tx.ConsumeRefresh(ctx, claims.ID, timeNow())
		if err != nil {
			return err
		}
		if !ok {
			return newErr(ErrUnauthorized, "Refresh token expired or revoked")
		}

		user, err := tx.GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newErr(ErrUnauthorized, "User not found")
			}
			return err
		}
		if !user.IsActive {
			return newErr(ErrUnauthorized, "Account is deactivated")
		}

		res, err = s.issue(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.Repo.RevokeRefreshByHash(ctx, tokens.Sha256Hex(refreshToken))
}

func (s *AuthService) issue(ctx context.Context, r *repo.GormRepo, user *models.User) (*AuthResult, error) {
	now := timeNow()
	accessExp := now.Add(s.AccessTTL)
	refreshExp := now.Add(s.RefreshTTL)

	access, err := tokens.NewAccessToken(s.AccessSecret, user.ID, user.Role, accessExp)
	if err != nil {
		return nil, err
	}
	refresh, jti, err := tokens.NewRefreshToken(s.RefreshSecret, user.ID, refreshExp)
	if err != nil {
		return nil, err
	}

	if err := r.CreateRefreshToken(ctx, &models.RefreshToken{
		UserID:    user.ID,
		Token:     tokens.Sha256Hex(refresh),
		JTI:       jti,
		ExpiresAt: refreshExp,
	}); err != nil {
		return nil, err
	}

	return &AuthResult{
		User: user,
		Tokens: transport.TokenPair{
			AccessToken:      access,
			RefreshToken:     refresh,
			AccessExpiresAt:  accessExp,
			RefreshExpiresAt: refreshExp,
		},
	}, nil
}

// PurgeTokens removes refresh tokens that are expired or revoked.
func (s *AuthService) PurgeTokens(ctx context.Context) (int64, error) {
	return s.Repo.PurgeRefreshTokens(ctx, timeNow())
}
