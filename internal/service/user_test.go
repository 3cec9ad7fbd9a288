package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/freshcart/internal/transport"
)

func strPtr(s string) *string { return &s }

func TestUpdateProfileRejectsTakenPhone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := f.newUser(t, "ravi@example.com", "9123456780")
	svc := &UserService{Repo: f.repo}

	_, err := svc.UpdateProfile(ctx, f.user.ID, transport.UpdateProfileRequest{Phone: strPtr(other.Phone)})
	requireKind(t, err, ErrConflict)
	require.Contains(t, err.Error(), "Phone number")

	u, err := svc.UpdateProfile(ctx, f.user.ID, transport.UpdateProfileRequest{Name: strPtr(" Asha K ")})
	require.NoError(t, err)
	require.Equal(t, "Asha K", u.Name)

	_, err = svc.UpdateProfile(ctx, f.user.ID, transport.UpdateProfileRequest{})
	requireKind(t, err, ErrValidation)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	auth := newAuthService(f)
	users := &UserService{Repo: f.repo}

	res, err := auth.Signup(ctx, signupReq("meera@example.com", "9000000001"))
	require.NoError(t, err)

	err = users.ChangePassword(ctx, res.User.ID, transport.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "another1"})
	requireKind(t, err, ErrValidation)

	require.NoError(t, users.ChangePassword(ctx, res.User.ID, transport.ChangePasswordRequest{CurrentPassword: "secret123", NewPassword: "another1"}))
	_, err = auth.Login(ctx, "meera@example.com", "another1")
	require.NoError(t, err)
	_, err = auth.Refresh(ctx, res.Tokens.RefreshToken)
	requireKind(t, err, ErrUnauthorized)
}

func TestFavorites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.newProduct(t, "Apples", "100", 10)
	svc := &UserService{Repo: f.repo}

	require.NoError(t, svc.AddFavorite(ctx, f.user.ID, p.ID))
	requireKind(t, svc.AddFavorite(ctx, f.user.ID, p.ID), ErrConflict)
	requireKind(t, svc.AddFavorite(ctx, f.user.ID, uuid.New()), ErrNotFound)

	favs, err := svc.Favorites(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	require.Equal(t, "Apples", favs[0].Name)

	stats, err := svc.Stats(ctx, f.user.ID)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Favorites)
	require.EqualValues(t, 1, stats.Addresses)

	require.NoError(t, svc.RemoveFavorite(ctx, f.user.ID, p.ID))
	requireKind(t, svc.RemoveFavorite(ctx, f.user.ID, p.ID), ErrNotFound)
}

func TestSetAvatarReturnsPrevious(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := &UserService{Repo: f.repo}

	_, old, err := svc.SetAvatar(ctx, f.user.ID, "/uploads/avatars/a.png")
	require.NoError(t, err)
	require.Empty(t, old)

	u, old, err := svc.SetAvatar(ctx, f.user.ID, "/uploads/avatars/b.png")
	require.NoError(t, err)
	require.Equal(t, "/uploads/avatars/a.png", old)
	require.Equal(t, "/uploads/avatars/b.png", u.Avatar)
}
