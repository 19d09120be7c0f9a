package cart

import (
	"testing"

	"shophub/internal/models"

	"github.com/stretchr/testify/assert"
)

func product(id int64, price float64) models.Product {
	return models.Product{ID: id, Name: "Product", Price: price}
}

func TestAddIncrementsExistingLine(t *testing.T) {
	c := New()

	for i := 0; i < 5; i++ {
		c.Add(product(1, 20))
	}

	lines := c.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 5, c.ItemCount())
}

func TestAddNewLineStartsAtOne(t *testing.T) {
	c := New()
	c.Add(product(1, 20))
	c.Add(product(2, 5))

	lines := c.Lines()
	assert.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestLinesKeepInsertionOrder(t *testing.T) {
	c := New()
	c.Add(product(3, 1))
	c.Add(product(1, 1))
	c.Add(product(2, 1))
	c.Add(product(1, 1))

	lines := c.Lines()
	assert.Equal(t, int64(3), lines[0].Product.ID)
	assert.Equal(t, int64(1), lines[1].Product.ID)
	assert.Equal(t, int64(2), lines[2].Product.ID)
}

func TestRemoveUnknownProductIsNoop(t *testing.T) {
	c := New()
	c.Add(product(1, 20))

	c.Remove(99)

	assert.Equal(t, 1, c.ItemCount())
}

func TestSetQuantityZeroMatchesRemove(t *testing.T) {
	viaRemove := New()
	viaRemove.Add(product(1, 20))
	viaRemove.Add(product(2, 5))
	viaRemove.Remove(1)

	viaSet := New()
	viaSet.Add(product(1, 20))
	viaSet.Add(product(2, 5))
	viaSet.SetQuantity(1, 0)

	assert.Equal(t, viaRemove.Lines(), viaSet.Lines())
	assert.Equal(t, viaRemove.ItemCount(), viaSet.ItemCount())
}

func TestSetQuantityUnknownProductIsNoop(t *testing.T) {
	c := New()
	c.Add(product(1, 20))

	c.SetQuantity(99, 3)

	assert.Equal(t, 1, c.ItemCount())
	assert.Len(t, c.Lines(), 1)
}

func TestSubtotalInvariantUnderAddOrder(t *testing.T) {
	a := New()
	a.Add(product(1, 20))
	a.Add(product(2, 5.5))
	a.Add(product(3, 12))

	b := New()
	b.Add(product(3, 12))
	b.Add(product(1, 20))
	b.Add(product(2, 5.5))

	assert.Equal(t, a.Subtotal(), b.Subtotal())
}

func TestSubtotalTreatsMissingPriceAsZero(t *testing.T) {
	c := New()
	c.Add(models.Product{ID: 1, Name: "No price"})
	c.Add(product(2, 10))

	assert.Equal(t, 10.0, c.Subtotal())
}

func TestRepeatedAddScenario(t *testing.T) {
	c := New()
	c.Add(product(1, 20))
	c.Add(product(1, 20))

	lines := c.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 40.0, c.Subtotal())
}

func TestClearEmptiesCart(t *testing.T) {
	c := New()
	c.Add(product(1, 20))
	c.Add(product(2, 5))

	c.Clear()

	assert.Empty(t, c.Lines())
	assert.Equal(t, 0, c.ItemCount())
	assert.Equal(t, 0.0, c.Subtotal())
}

func TestManagerCreatesCartPerSession(t *testing.T) {
	m := NewManager()

	a := m.Cart("session-a")
	b := m.Cart("session-b")
	a.Add(product(1, 20))

	assert.Equal(t, 1, a.ItemCount())
	assert.Equal(t, 0, b.ItemCount())
	assert.Same(t, a, m.Cart("session-a"))
	assert.Equal(t, 2, m.Len())
}

func TestManagerDrop(t *testing.T) {
	m := NewManager()
	m.Cart("session-a").Add(product(1, 20))

	m.Drop("session-a")

	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.Cart("session-a").ItemCount())
}
