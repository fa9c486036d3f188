package services_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/mithai/app/models"
	"github.com/shashiranjanraj/mithai/app/services"
)

var buyer = models.User{ID: 1, Username: "alice"}

func TestCreateAndList(t *testing.T) {
	db := newTestDB(t)
	svc := newSweetService(t, db)

	first, err := svc.Create(services.SweetFields{Name: "Kaju Katli", Category: "Barfi", Price: 4.5, Quantity: 40}, buyer)
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	second, err := svc.Create(services.SweetFields{Name: "Chocolate", Category: "Bar", Price: 1.25, Quantity: 80}, buyer)
	require.NoError(t, err)

	sweets, err := svc.List()
	require.NoError(t, err)
	require.Len(t, sweets, 2)
	// Insertion order.
	assert.Equal(t, first.ID, sweets[0].ID)
	assert.Equal(t, second.ID, sweets[1].ID)
}

func TestCreateRejectsNegativeValues(t *testing.T) {
	db := newTestDB(t)
	svc := newSweetService(t, db)

	_, err := svc.Create(services.SweetFields{Name: "Bad", Price: -1, Quantity: 1}, buyer)
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = svc.Create(services.SweetFields{Name: "Bad", Price: 1, Quantity: -1}, buyer)
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	// Nothing was persisted.
	sweets, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, sweets)
}

func TestCreateAllowsZeroValues(t *testing.T) {
	db := newTestDB(t)
	svc := newSweetService(t, db)

	sweet, err := svc.Create(services.SweetFields{Name: "Freebie", Category: "Promo", Price: 0, Quantity: 0}, buyer)
	require.NoError(t, err)
	assert.Zero(t, sweet.Price)
	assert.Zero(t, sweet.Quantity)
}

func TestSearchIsCaseSensitiveSubstring(t *testing.T) {
	db := newTestDB(t)
	svc := newSweetService(t, db)

	_, err := svc.Create(services.SweetFields{Name: "Super Sour Candy", Category: "Candy", Price: 0.75, Quantity: 10}, buyer)
	require.NoError(t, err)
	_, err = svc.Create(services.SweetFields{Name: "Chocolate", Category: "Bar", Price: 1.25, Quantity: 10}, buyer)
	require.NoError(t, err)

	found, err := svc.Search("Sour")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Super Sour Candy", found[0].Name)

	// Wrong case does not match.
	found, err = svc.Search("sour")
	require.NoError(t, err)
	assert.Empty(t, found)

	// Empty filter returns everything.
	found, err = svc.Search("")
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestUpdateReplacesAllFields(t *testing.T) {
	db := newTestDB(t)
	svc := newSweetService(t, db)

	sweet, err := svc.Create(services.SweetFields{Name: "KitKat", Category: "Wafer", Price: 1, Quantity: 10}, buyer)
	require.NoError(t, err)

	updated, err := svc.Update(sweet.ID, services.SweetFields{Name: "KitKat Chunky", Category: "Chocolate", Price: 1.5, Quantity: 25}, buyer)
	require.NoError(t, err)
	assert.Equal(t, sweet.ID, updated.ID)
	assert.Equal(t, "KitKat Chunky", updated.Name)
	assert.Equal(t, "Chocolate", updated.Category)
	assert.Equal(t, 1.5, updated.Price)
	assert.Equal(t, 25, updated.Quantity)
}

func TestUpdateValidatesAndChecksExistence(t *testing.T) {
	db := newTestDB(t)
	svc := newSweetService(t, db)

	_, err := svc.Update(999, services.SweetFields{Name: "Nope"}, buyer)
	assert.ErrorIs(t, err, services.ErrNotFound)

	sweet, err := svc.Create(services.SweetFields{Name: "KitKat", Category: "Wafer", Price: 1, Quantity: 10}, buyer)
	require.NoError(t, err)

	_, err = svc.Update(sweet.ID, services.SweetFields{Name: "KitKat", Price: -2}, buyer)
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	db := newTestDB(t)
	svc := newSweetService(t, db)

	sweet, err := svc.Create(services.SweetFields{Name: "KitKat", Category: "Wafer", Price: 1, Quantity: 10}, buyer)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(sweet.ID, buyer))
	assert.ErrorIs(t, svc.Delete(sweet.ID, buyer), services.ErrNotFound)

	sweets, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, sweets)
}

func TestPurchaseDecrementsUntilOutOfStock(t *testing.T) {
	db := newTestDB(t)
	svc := newSweetService(t, db)

	const stock = 5
	sweet, err := svc.Create(services.SweetFields{Name: "Gulab Jamun", Category: "Syrup", Price: 2, Quantity: stock}, buyer)
	require.NoError(t, err)

	for want := stock - 1; want >= 0; want-- {
		remaining, err := svc.Purchase(sweet.ID, buyer)
		require.NoError(t, err)
		assert.Equal(t, want, remaining)
	}

	_, err = svc.Purchase(sweet.ID, buyer)
	assert.ErrorIs(t, err, services.ErrOutOfStock)
}

func TestPurchaseUnknownID(t *testing.T) {
	db := newTestDB(t)
	svc := newSweetService(t, db)

	_, err := svc.Purchase(42, buyer)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

// Two concurrent purchases of the last unit: exactly one may win, and the
// stock must end at zero, never negative.
func TestPurchaseConcurrentLastUnit(t *testing.T) {
	db := newTestDB(t)
	svc := newSweetService(t, db)

	sweet, err := svc.Create(services.SweetFields{Name: "Last One", Category: "Candy", Price: 1, Quantity: 1}, buyer)
	require.NoError(t, err)

	const attempts = 8
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Purchase(sweet.ID, buyer)
		}(i)
	}
	wg.Wait()

	var wins, outOfStock int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case assert.ErrorIs(t, err, services.ErrOutOfStock):
			outOfStock++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, outOfStock)

	final, err := svc.List()
	require.NoError(t, err)
	require.Len(t, final, 1)
	assert.Equal(t, 0, final[0].Quantity)
}

func TestCapabilitySeam(t *testing.T) {
	db := newTestDB(t)
	svc := newSweetService(t, db).WithCapability(func(u models.User) bool {
		return u.Username == "admin"
	})

	_, err := svc.Create(services.SweetFields{Name: "KitKat", Category: "Wafer", Price: 1, Quantity: 1}, buyer)
	assert.ErrorIs(t, err, services.ErrUnauthenticated)

	admin := models.User{ID: 2, Username: "admin"}
	_, err = svc.Create(services.SweetFields{Name: "KitKat", Category: "Wafer", Price: 1, Quantity: 1}, admin)
	assert.NoError(t, err)
}
