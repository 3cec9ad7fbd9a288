package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/freshcart/internal/hash"
	"github.com/Skotchmaster/freshcart/internal/models"
	"github.com/Skotchmaster/freshcart/internal/repo"
	"github.com/Skotchmaster/freshcart/internal/transport"
)

type UserService struct {
	Repo   *repo.GormRepo
	Events Publisher
}

type UserStats struct {
	TotalOrders         int                    `json:"totalOrders"`
	TotalSpent          decimal.Decimal        `json:"totalSpent"`
	OrdersByStatus      []repo.StatusAggregate `json:"ordersByStatus"`
	UnreadNotifications int64                  `json:"unreadNotifications"`
	Addresses           int64                  `json:"addresses"`
	Favorites           int                    `json:"favorites"`
}

// ActiveUser loads a user and rejects deactivated accounts.
func (s *UserService) ActiveUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newErr(ErrUnauthorized, "User no longer exists")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, newErr(ErrUnauthorized, "Account is deactivated")
	}
	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "User")
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req transport.UpdateProfileRequest) (*models.User, error) {
	fields := map[string]any{}
	var email, phone string
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email = normalizeEmail(*req.Email)
		fields["email"] = email
	}
	if req.Phone != nil {
		phone = strings.TrimSpace(*req.Phone)
		fields["phone"] = phone
	}
	if len(fields) == 0 {
		return nil, validationf("Nothing to update")
	}

	if err := checkContactUnique(ctx, s.Repo, email, phone, id); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateUser(ctx, id, fields); err != nil {
		return nil, mapNotFound(err, "User")
	}
	return s.GetProfile(ctx, id)
}

func (s *UserService) ChangePassword(ctx context.Context, id uuid.UUID, req transport.ChangePasswordRequest) error {
	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		return mapNotFound(err, "User")
	}
	if !hash.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return validationf("Current password is incorrect")
	}
	pwHash, err := hash.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.Repo.WithTx(ctx, func(tx *repo.GormRepo) error {
		if err := tx.UpdateUser(ctx, id, map[string]any{"password_hash": pwHash}); err != nil {
			return err
		}
		return tx.RevokeUserTokens(ctx, id)
	})
}

// SetAvatar stores the new avatar URL and returns the one it replaced.
func (s *UserService) SetAvatar(ctx context.Context, id uuid.UUID, url string) (*models.User, string, error) {
	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, "", mapNotFound(err, "User")
	}
	old := user.Avatar
	if err := s.Repo.UpdateUser(ctx, id, map[string]any{"avatar": url}); err != nil {
		return nil, "", err
	}
	user.Avatar = url
	return user, old, nil
}

// Deactivate soft-deletes the account and revokes its sessions.
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) error {
	err := s.Repo.WithTx(ctx, func(tx *repo.GormRepo) error {
		if err := tx.UpdateUser(ctx, id, map[string]any{"is_active": false}); err != nil {
			return mapNotFound(err, "User")
		}
		return tx.RevokeUserTokens(ctx, id)
	})
	if err != nil {
		return err
	}
	publish(ctx, s.Events, TopicUserEvents, id.String(), map[string]any{
		"type":   "user_deactivated",
		"userId": id,
	})
	return nil
}

func (s *UserService) Stats(ctx context.Context, id uuid.UUID) (*UserStats, error) {
	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "User")
	}
	byStatus, err := s.Repo.OrderStats(ctx, id)
	if err != nil {
		return nil, err
	}
	unread, err := s.Repo.CountUnread(ctx, id)
	if err != nil {
		return nil, err
	}
	addrs, err := s.Repo.CountAddresses(ctx, id)
	if err != nil {
		return nil, err
	}
	favs, err := s.Repo.ListFavorites(ctx, id)
	if err != nil {
		return nil, err
	}
	return &UserStats{
		TotalOrders:         user.TotalOrders,
		TotalSpent:          user.TotalSpent,
		OrdersByStatus:      byStatus,
		UnreadNotifications: unread,
		Addresses:           addrs,
		Favorites:           len(favs),
	}, nil
}

func (s *UserService) Favorites(ctx context.Context, id uuid.UUID) ([]models.Product, error) {
	return s.Repo.ListFavorites(ctx, id)
}

func (s *UserService) AddFavorite(ctx context.Context, id, productID uuid.UUID) error {
	p, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		return mapNotFound(err, "Product")
	}
	if !p.IsActive {
		return notFound("Product")
	}
	added, err := s.Repo.AddFavorite(ctx, id, productID)
	if err != nil {
		return err
	}
	if !added {
		return conflictf("Product already in favorites")
	}
	return nil
}

func (s *UserService) RemoveFavorite(ctx context.Context, id, productID uuid.UUID) error {
	n, err := s.Repo.RemoveFavorite(ctx, id, productID)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("Favorite")
	}
	return nil
}

func (s *UserService) ListUsers(ctx context.Context, offset, limit int) ([]models.User, int64, error) {
	return s.Repo.ListUsers(ctx, offset, limit)
}
