package catalog

import (
	"testing"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product successfully", func(t *testing.T) {
		p, err := NewProduct("Watchmen", "HQ-001", valueobject.NewMoneyBRLFromFloat(89.90))
		require.NoError(t, err)
		assert.Equal(t, "Watchmen", p.Title)
		assert.Equal(t, "HQ-001", p.Code)
		assert.True(t, p.Active)
		assert.Zero(t, p.StockQuantity)
		assert.Equal(t, 1, p.GetVersion())
	})

	t.Run("fails with empty title", func(t *testing.T) {
		_, err := NewProduct("", "HQ-001", valueobject.NewMoneyBRLFromFloat(10))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "title")
	})

	t.Run("fails with empty code", func(t *testing.T) {
		_, err := NewProduct("Watchmen", "", valueobject.NewMoneyBRLFromFloat(10))
		assert.Error(t, err)
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct("Watchmen", "HQ-001", valueobject.NewMoneyBRLFromFloat(-1))
		assert.Error(t, err)
	})
}

func TestProduct_CanFulfill(t *testing.T) {
	p, _ := NewProduct("Sandman Vol. 1", "HQ-002", valueobject.NewMoneyBRLFromFloat(59.90))
	p.StockQuantity = 5

	assert.True(t, p.CanFulfill(5))
	assert.True(t, p.CanFulfill(1))
	assert.False(t, p.CanFulfill(6))
	assert.False(t, p.CanFulfill(0))
	assert.False(t, p.CanFulfill(-2))
}

func TestProduct_ActivateDeactivate(t *testing.T) {
	p, _ := NewProduct("Maus", "HQ-003", valueobject.NewMoneyBRLFromFloat(74.90))
	version := p.GetVersion()

	p.Deactivate()
	assert.False(t, p.Active)
	assert.Equal(t, version+1, p.GetVersion())

	p.Activate()
	assert.True(t, p.Active)
	assert.Equal(t, version+2, p.GetVersion())
}
