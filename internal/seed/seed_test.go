package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/freshcart/internal/hash"
	"github.com/Skotchmaster/freshcart/internal/models"
	"github.com/Skotchmaster/freshcart/internal/testutil"
)

func TestApplyIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	admin := Admin{Name: "Admin", Email: "admin@freshcart.test", Phone: "9000000000", Password: "admin123"}

	require.NoError(t, Apply(context.Background(), db, admin))
	require.NoError(t, Apply(context.Background(), db, admin))

	var users, cats, prods int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Category{}).Count(&cats).Error)
	require.NoError(t, db.Model(&models.Product{}).Count(&prods).Error)
	require.EqualValues(t, 1, users)
	require.EqualValues(t, len(categories), cats)
	require.EqualValues(t, len(products), prods)

	var u models.User
	require.NoError(t, db.Where("email = ?", admin.Email).First(&u).Error)
	require.True(t, u.IsAdmin())
	require.True(t, hash.CheckPassword(u.PasswordHash, "admin123"))
}

func TestApplyRequiresAdminCredentials(t *testing.T) {
	db := testutil.NewDB(t)
	require.Error(t, Apply(context.Background(), db, Admin{Email: "admin@freshcart.test"}))
}
