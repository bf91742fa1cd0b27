package shoppinglist

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateSumsByNameAndUnit(t *testing.T) {
	lines := []IngredientLine{
		{Name: "Flour", MeasurementUnit: "g", Amount: 200},
		{Name: "Sugar", MeasurementUnit: "g", Amount: 50},
		{Name: "Flour", MeasurementUnit: "g", Amount: 150},
	}

	grouped := Aggregate(lines)

	require.Len(t, grouped, 2)
	assert.Equal(t, IngredientLine{Name: "Flour", MeasurementUnit: "g", Amount: 350}, grouped[0])
	assert.Equal(t, IngredientLine{Name: "Sugar", MeasurementUnit: "g", Amount: 50}, grouped[1])
}

func TestAggregateKeepsDifferentUnitsApart(t *testing.T) {
	lines := []IngredientLine{
		{Name: "Milk", MeasurementUnit: "ml", Amount: 500},
		{Name: "Milk", MeasurementUnit: "tbsp", Amount: 2},
	}

	grouped := Aggregate(lines)

	require.Len(t, grouped, 2)
	assert.Equal(t, "ml", grouped[0].MeasurementUnit)
	assert.Equal(t, "tbsp", grouped[1].MeasurementUnit)
}

func TestAggregateEmptyInput(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
	assert.Empty(t, Aggregate([]IngredientLine{}))
}

func TestAggregateOrderIndependent(t *testing.T) {
	lines := []IngredientLine{
		{Name: "Salt", MeasurementUnit: "g", Amount: 5},
		{Name: "Egg", MeasurementUnit: "pc", Amount: 3},
		{Name: "Salt", MeasurementUnit: "g", Amount: 2},
		{Name: "Butter", MeasurementUnit: "g", Amount: 100},
		{Name: "Egg", MeasurementUnit: "pc", Amount: 1},
	}

	want := Aggregate(lines)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]IngredientLine, len(lines))
		copy(shuffled, lines)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, Aggregate(shuffled))
	}
}

func TestAggregateSortedByName(t *testing.T) {
	lines := []IngredientLine{
		{Name: "Zucchini", MeasurementUnit: "g", Amount: 300},
		{Name: "Apple", MeasurementUnit: "pc", Amount: 2},
		{Name: "Milk", MeasurementUnit: "ml", Amount: 250},
	}

	grouped := Aggregate(lines)

	require.Len(t, grouped, 3)
	assert.Equal(t, "Apple", grouped[0].Name)
	assert.Equal(t, "Milk", grouped[1].Name)
	assert.Equal(t, "Zucchini", grouped[2].Name)
}
