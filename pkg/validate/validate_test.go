package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type registerInput struct {
	Username string `json:"username" validate:"required,alpha_dash,min=2,max=32"`
	Password string `json:"password" validate:"required,max=72"`
}

type sweetInput struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Category string  `json:"category" validate:"nullable,max=255"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=0"`
}

func TestStructValid(t *testing.T) {
	errs := Struct(&registerInput{Username: "alice_01", Password: "pw"})
	assert.False(t, HasErrors(errs))

	errs = Struct(&sweetInput{Name: "KitKat", Price: 0, Quantity: 0})
	assert.False(t, HasErrors(errs), "zero price/quantity are valid: %v", errs)
}

func TestRequired(t *testing.T) {
	errs := Struct(&registerInput{Password: "pw"})
	assert.Contains(t, errs, "username")

	// Whitespace-only counts as empty.
	errs = Struct(&registerInput{Username: "   ", Password: "pw"})
	assert.Contains(t, errs, "username")
}

func TestMinMax(t *testing.T) {
	errs := Struct(&registerInput{Username: "a", Password: "pw"})
	assert.Contains(t, errs, "username")

	long := make([]byte, 80)
	for i := range long {
		long[i] = 'x'
	}
	errs = Struct(&registerInput{Username: "alice", Password: string(long)})
	assert.Contains(t, errs, "password")
}

func TestAlphaDash(t *testing.T) {
	errs := Struct(&registerInput{Username: "alice smith", Password: "pw"})
	assert.Contains(t, errs, "username")

	errs = Struct(&registerInput{Username: "alice-smith_2", Password: "pw"})
	assert.NotContains(t, errs, "username")
}

func TestGte(t *testing.T) {
	errs := Struct(&sweetInput{Name: "Bad", Price: -0.01, Quantity: 1})
	assert.Contains(t, errs, "price")

	errs = Struct(&sweetInput{Name: "Bad", Price: 1, Quantity: -1})
	assert.Contains(t, errs, "quantity")
}

func TestNullableSkipsRules(t *testing.T) {
	errs := Struct(&sweetInput{Name: "KitKat"})
	assert.NotContains(t, errs, "category")
}

func TestFirstFailingRuleWins(t *testing.T) {
	// Empty username violates required, alpha_dash and min; only one
	// message is reported.
	errs := Struct(&registerInput{Password: "pw"})
	assert.Len(t, errs, 1)
}

func TestNonStructInput(t *testing.T) {
	assert.Empty(t, Struct("not a struct"))
	assert.Empty(t, Struct(42))
}
