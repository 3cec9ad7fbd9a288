package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/freshcart/internal/models"
	"github.com/Skotchmaster/freshcart/internal/repo"
	"github.com/Skotchmaster/freshcart/internal/transport"
)

// AddressService keeps at most one default address per user. Every change
// of the default runs in one transaction and the partial unique index on
// (user_id) WHERE is_default backs it up.
type AddressService struct {
	Repo *repo.GormRepo
}

func (s *AddressService) List(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	return s.Repo.ListAddresses(ctx, userID)
}

func (s *AddressService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Address, error) {
	addr, err := s.Repo.GetAddress(ctx, userID, id)
	if err != nil {
		return nil, mapNotFound(err, "Address")
	}
	return addr, nil
}

func (s *AddressService) GetDefault(ctx context.Context, userID uuid.UUID) (*models.Address, error) {
	addr, err := s.Repo.GetDefaultAddress(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err, "Default address")
	}
	return addr, nil
}

func (s *AddressService) Create(ctx context.Context, userID uuid.UUID, req transport.AddressRequest) (*models.Address, error) {
	label := req.Label
	if label == "" {
		label = models.AddressHome
	}
	addr := &models.Address{
		UserID:   userID,
		Label:    label,
		Name:     req.Name,
		Phone:    req.Phone,
		Street:   req.Street,
		Landmark: req.Landmark,
		City:     req.City,
		State:    req.State,
		Pincode:  req.Pincode,
	}

	err := s.Repo.WithTx(ctx, func(tx *repo.GormRepo) error {
		n, err := tx.CountAddresses(ctx, userID)
		if err != nil {
			return err
		}
		addr.IsDefault = req.IsDefault || n == 0
		if addr.IsDefault {
			if err := tx.ClearDefault(ctx, userID, uuid.Nil); err != nil {
				return err
			}
		}
		return tx.CreateAddress(ctx, addr)
	})
	if err != nil {
		return nil, err
	}
	return addr, nil
}

func (s *AddressService) Update(ctx context.Context, userID, id uuid.UUID, req transport.UpdateAddressRequest) (*models.Address, error) {
	var addr *models.Address
	err := s.Repo.WithTx(ctx, func(tx *repo.GormRepo) error {
		var err error
		addr, err = tx.GetAddress(ctx, userID, id)
		if err != nil {
			return mapNotFound(err, "Address")
		}
		applyAddressPatch(addr, req)

		if addr.IsDefault {
			if err := tx.ClearDefault(ctx, userID, addr.ID); err != nil {
				return err
			}
		}
		return tx.SaveAddress(ctx, addr)
	})
	if err != nil {
		return nil, err
	}
	return addr, nil
}

func applyAddressPatch(a *models.Address, req transport.UpdateAddressRequest) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&a.Label, req.Label)
	set(&a.Name, req.Name)
	set(&a.Phone, req.Phone)
	set(&a.Street, req.Street)
	set(&a.Landmark, req.Landmark)
	set(&a.City, req.City)
	set(&a.State, req.State)
	set(&a.Pincode, req.Pincode)
	if req.IsDefault != nil {
		a.IsDefault = *req.IsDefault
	}
}

// SetDefault makes id the only default address of the user.
func (s *AddressService) SetDefault(ctx context.Context, userID, id uuid.UUID) (*models.Address, error) {
	var addr *models.Address
	err := s.Repo.WithTx(ctx, func(tx *repo.GormRepo) error {
		if err := tx.ClearDefault(ctx, userID, id); err != nil {
			return err
		}
		n, err := tx.MarkDefault(ctx, userID, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return notFound("Address")
		}
		addr, err = tx.GetAddress(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return addr, nil
}

// Delete removes an address. When it was the default the oldest remaining
// address is promoted.
func (s *AddressService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.Repo.WithTx(ctx, func(tx *repo.GormRepo) error {
		addr, err := tx.GetAddress(ctx, userID, id)
		if err != nil {
			return mapNotFound(err, "Address")
		}
		if _, err := tx.DeleteAddress(ctx, userID, id); err != nil {
			return err
		}
		if !addr.IsDefault {
			return nil
		}

		next, err := tx.OldestAddress(ctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		_, err = tx.MarkDefault(ctx, userID, next.ID)
		return err
	})
}
