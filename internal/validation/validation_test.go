package validation

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/freshcart/internal/transport"
)

func TestValidateSignup(t *testing.T) {
	v := New()

	err := v.Validate(&transport.SignupRequest{Name: "A", Email: "nope", Phone: "12ab", Password: "123"})
	require.Error(t, err)

	var fe Errors
	require.True(t, errors.As(err, &fe))

	byField := map[string]string{}
	for _, e := range fe {
		byField[e.Field] = e.Message
	}
	require.Equal(t, "must be at least 2 characters", byField["name"])
	require.Equal(t, "must be a valid email address", byField["email"])
	require.Contains(t, byField, "phone")
	require.Contains(t, byField, "password")

	require.NoError(t, v.Validate(&transport.SignupRequest{
		Name: "Asha", Email: "asha@example.com", Phone: "9876543210", Password: "secret1",
	}))
}

func TestValidateNestedOrderItems(t *testing.T) {
	v := New()

	err := v.Validate(&transport.CreateOrderRequest{
		Items:         []transport.OrderItemRequest{{ProductID: uuid.New(), Quantity: 0}},
		AddressID:     uuid.New(),
		PaymentMethod: "cheque",
	})
	var fe Errors
	require.True(t, errors.As(err, &fe))

	fields := []string{}
	for _, e := range fe {
		fields = append(fields, e.Field)
	}
	require.Contains(t, fields, "items[0].quantity")
	require.Contains(t, fields, "paymentMethod")
}

func TestValidateLoginNeedsEmailOrPhone(t *testing.T) {
	v := New()
	require.Error(t, v.Validate(&transport.LoginRequest{Password: "x"}))
	require.NoError(t, v.Validate(&transport.LoginRequest{Phone: "9876543210", Password: "x"}))
}
