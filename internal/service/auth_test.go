package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/freshcart/internal/tokens"
	"github.com/Skotchmaster/freshcart/internal/transport"
)

func newAuthService(f *fixture) *AuthService {
	return &AuthService{
		Repo:          f.repo,
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
	}
}

func signupReq(email, phone string) transport.SignupRequest {
	return transport.SignupRequest{Name: "Meera", Email: email, Phone: phone, Password: "secret123"}
}

func TestSignupAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := newAuthService(f)

	res, err := svc.Signup(ctx, signupReq(" Meera@Example.com ", "9000000001"))
	require.NoError(t, err)
	require.Equal(t, "meera@example.com", res.User.Email)
	require.NotEqual(t, "secret123", res.User.PasswordHash)

	claims, err := tokens.AccessClaimsFromToken(res.Tokens.AccessToken, svc.AccessSecret)
	require.NoError(t, err)
	require.Equal(t, res.User.ID.String(), claims.Subject)
	require.Equal(t, "user", claims.Role)

	byEmail, err := svc.Login(ctx, "MEERA@example.com", "secret123")
	require.NoError(t, err)
	require.NotNil(t, byEmail.User.LastLoginAt)

	_, err = svc.Login(ctx, "9000000001", "secret123")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "9000000001", "wrong")
	requireKind(t, err, ErrUnauthorized)
	_, err = svc.Login(ctx, "nobody@example.com", "secret123")
	requireKind(t, err, ErrUnauthorized)
}

func TestSignupDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := newAuthService(f)

	_, err := svc.Signup(ctx, signupReq("new@example.com", f.user.Phone))
	requireKind(t, err, ErrConflict)
	require.Contains(t, err.Error(), "Phone number")

	_, err = svc.Signup(ctx, signupReq(f.user.Email, "9000000002"))
	requireKind(t, err, ErrConflict)
	require.Contains(t, err.Error(), "Email")
}

func TestDuplicateContactNamesField(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := duplicateContact(ctx, f.repo, "other@example.com", f.user.Phone)
	requireKind(t, err, ErrConflict)
	require.Contains(t, err.Error(), "Phone number")

	err = duplicateContact(ctx, f.repo, f.user.Email, "9000000003")
	requireKind(t, err, ErrConflict)
	require.Contains(t, err.Error(), "Email")

	err = duplicateContact(ctx, f.repo, "free@example.com", "9000000004")
	requireKind(t, err, ErrConflict)
	require.Contains(t, err.Error(), "User already exists")
}

func TestRefreshRotatesToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := newAuthService(f)

	res, err := svc.Signup(ctx, signupReq("meera@example.com", "9000000001"))
	require.NoError(t, err)

	rotated, err := svc.Refresh(ctx, res.Tokens.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, res.Tokens.RefreshToken, rotated.Tokens.RefreshToken)

	_, err = svc.Refresh(ctx, res.Tokens.RefreshToken)
	requireKind(t, err, ErrUnauthorized)

	require.NoError(t, svc.Logout(ctx, rotated.Tokens.RefreshToken))
	_, err = svc.Refresh(ctx, rotated.Tokens.RefreshToken)
	requireKind(t, err, ErrUnauthorized)

	purged, err := svc.PurgeTokens(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, purged)

	_, err = svc.Refresh(ctx, "garbage")
	requireKind(t, err, ErrUnauthorized)
}

func TestDeactivatedAccountCannotLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	auth := newAuthService(f)
	users := &UserService{Repo: f.repo}

	res, err := auth.Signup(ctx, signupReq("meera@example.com", "9000000001"))
	require.NoError(t, err)
	require.NoError(t, users.Deactivate(ctx, res.User.ID))

	_, err = auth.Login(ctx, "meera@example.com", "secret123")
	requireKind(t, err, ErrUnauthorized)
	require.Equal(t, "Account is deactivated", err.Error())

	_, err = auth.Refresh(ctx, res.Tokens.RefreshToken)
	requireKind(t, err, ErrUnauthorized)

	_, err = users.ActiveUser(ctx, res.User.ID)
	requireKind(t, err, ErrUnauthorized)
}
