package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/freshcart/internal/models"
	"github.com/Skotchmaster/freshcart/internal/transport"
)

func addressReq(city string, isDefault bool) transport.AddressRequest {
	return transport.AddressRequest{
		Name:      "Asha",
		Phone:     "9876543210",
		Street:    "1 Main St",
		City:      city,
		State:     "KA",
		Pincode:   "560001",
		IsDefault: isDefault,
	}
}

func requireSingleDefault(t *testing.T, svc *AddressService, userID uuid.UUID) *models.Address {
	t.Helper()
	list, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	var def *models.Address
	n := 0
	for i := range list {
		if list[i].IsDefault {
			n++
			def = &list[i]
		}
	}
	if len(list) > 0 {
		require.Equal(t, 1, n)
	} else {
		require.Zero(t, n)
	}
	return def
}

func TestAddressDefaultInvariant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.newUser(t, "ravi@example.com", "9123456780")
	svc := &AddressService{Repo: f.repo}

	first, err := svc.Create(ctx, user.ID, addressReq("Bengaluru", false))
	require.NoError(t, err)
	require.True(t, first.IsDefault)
	require.Equal(t, models.AddressHome, first.Label)

	second, err := svc.Create(ctx, user.ID, addressReq("Mysuru", false))
	require.NoError(t, err)
	require.False(t, second.IsDefault)
	require.Equal(t, first.ID, requireSingleDefault(t, svc, user.ID).ID)

	third, err := svc.Create(ctx, user.ID, addressReq("Hubli", true))
	require.NoError(t, err)
	require.Equal(t, third.ID, requireSingleDefault(t, svc, user.ID).ID)

	_, err = svc.SetDefault(ctx, user.ID, second.ID)
	require.NoError(t, err)
	require.Equal(t, second.ID, requireSingleDefault(t, svc, user.ID).ID)

	yes := true
	_, err = svc.Update(ctx, user.ID, first.ID, transport.UpdateAddressRequest{IsDefault: &yes})
	require.NoError(t, err)
	require.Equal(t, first.ID, requireSingleDefault(t, svc, user.ID).ID)

	require.NoError(t, svc.Delete(ctx, user.ID, first.ID))
	promoted := requireSingleDefault(t, svc, user.ID)
	require.Equal(t, second.ID, promoted.ID)

	require.NoError(t, svc.Delete(ctx, user.ID, third.ID))
	require.NoError(t, svc.Delete(ctx, user.ID, second.ID))
	requireSingleDefault(t, svc, user.ID)

	_, err = svc.GetDefault(ctx, user.ID)
	requireKind(t, err, ErrNotFound)
}

func TestAddressOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := f.newUser(t, "ravi@example.com", "9123456780")
	svc := &AddressService{Repo: f.repo}

	_, err := svc.Get(ctx, other.ID, f.addr.ID)
	requireKind(t, err, ErrNotFound)
	_, err = svc.SetDefault(ctx, other.ID, f.addr.ID)
	requireKind(t, err, ErrNotFound)
	requireKind(t, svc.Delete(ctx, other.ID, f.addr.ID), ErrNotFound)

	def, err := svc.GetDefault(ctx, f.user.ID)
	require.NoError(t, err)
	require.Equal(t, f.addr.ID, def.ID)
}

func TestAddressUpdatePatch(t *testing.T) {
	f := newFixture(t)
	svc := &AddressService{Repo: f.repo}

	city := "Nashik"
	a, err := svc.Update(context.Background(), f.user.ID, f.addr.ID, transport.UpdateAddressRequest{City: &city})
	require.NoError(t, err)
	require.Equal(t, "Nashik", a.City)
	require.Equal(t, f.addr.Street, a.Street)
	require.True(t, a.IsDefault)
}
