package notify

import (
	"testing"
	"time"

	"eshop/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestComposeActivationNewRegister(t *testing.T) {
	link := "http://localhost:8000/api/users/verify/sometoken"

	subject, body := ComposeActivation(NewRegister, "Alice", link)

	assert.Equal(t, ActivationSubject, subject)
	assert.Contains(t, body, "Hi Alice")
	assert.Contains(t, body, "Welcome to E-Shop")
	assert.NotContains(t, body, "Welcome back")
	assert.Contains(t, body, link)
}

func TestComposeActivationReactivation(t *testing.T) {
	subject, body := ComposeActivation(Reactivation, "Bob", "http://example.com/verify/t")

	assert.Equal(t, ActivationSubject, subject)
	assert.Contains(t, body, "Welcome back to E-Shop")
}

func TestComposeActivationEscapesName(t *testing.T) {
	_, body := ComposeActivation(NewRegister, "<script>", "http://example.com/verify/t")

	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestComposeNewUserAlert(t *testing.T) {
	joined := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	u := &domain.User{
		ID:        uuid.New(),
		Email:     "alice@example.com",
		Username:  "alice@example.com",
		Name:      "Alice",
		CreatedAt: joined,
	}

	subject, body := ComposeNewUserAlert(u)

	assert.Equal(t, NewUserAlertSubject, subject)
	assert.Contains(t, body, "alice@example.com")
	assert.Contains(t, body, "Alice")
	assert.Contains(t, body, "09-03-2024 14:05:07")
	assert.Contains(t, body, "<table")
}

func TestComposeNewOrderAlert(t *testing.T) {
	o := &domain.Order{
		ID: uuid.New(),
		Items: []domain.OrderItem{
			{Name: "Widget", Qty: 2, Price: 10},
			{Name: "Gadget", Qty: 1, Price: 5},
		},
	}

	subject, body := ComposeNewOrderAlert("alice@example.com", o)

	assert.Equal(t, NewOrderAlertSubject, subject)
	assert.Contains(t, body, "alice@example.com")
	assert.Contains(t, body, o.ID.String())
	assert.Contains(t, body, "Widget")
	assert.Contains(t, body, "Gadget")
	assert.Contains(t, body, "Total Price of Items: 25")
}

func TestOrderItemsTotal(t *testing.T) {
	o := &domain.Order{Items: []domain.OrderItem{
		{Qty: 3, Price: 2.5},
		{Qty: 1, Price: 0.5},
	}}

	assert.InDelta(t, 8.0, o.ItemsTotal(), 1e-9)
}
