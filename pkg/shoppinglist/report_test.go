package shoppinglist

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportDate = time.Date(2026, time.August, 24, 12, 0, 0, 0, time.UTC)

func sampleReport() Report {
	lines := []IngredientLine{
		{Name: "Flour", MeasurementUnit: "g", Amount: 200},
		{Name: "Flour", MeasurementUnit: "g", Amount: 100},
		{Name: "Egg", MeasurementUnit: "pc", Amount: 2},
	}
	recipes := []RecipeSource{
		{Name: "Pancakes", Author: "alice"},
	}
	return NewReport("Alice Smith", reportDate, lines, recipes)
}

func TestRenderTextContent(t *testing.T) {
	content, contentType, err := sampleReport().Render(FormatText)
	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", contentType)

	text := string(content)
	assert.Contains(t, text, "Shopping list for: Alice Smith")
	assert.Contains(t, text, "Date: 24.08.2026")
	assert.Contains(t, text, "1. Egg - 2 pc")
	assert.Contains(t, text, "2. Flour - 300 g")
	assert.Contains(t, text, "- Pancakes (@alice)")
}

func TestRenderDefaultsToText(t *testing.T) {
	content, contentType, err := sampleReport().Render("")
	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", contentType)
	assert.True(t, strings.HasPrefix(string(content), "Shopping list for:"))
}

func TestRenderXML(t *testing.T) {
	content, contentType, err := sampleReport().Render(FormatXML)
	require.NoError(t, err)
	assert.Equal(t, "application/xml; charset=utf-8", contentType)
	assert.True(t, strings.HasPrefix(string(content), xml.Header))

	var cart xmlShoppingCart
	require.NoError(t, xml.Unmarshal(content, &cart))
	assert.Equal(t, "Alice Smith", cart.User.Name)
	assert.Equal(t, "24.08.2026", cart.User.Date)
	require.Len(t, cart.User.Ingredients, 2)
	assert.Equal(t, xmlIngredient{Name: "Egg", Amount: 2, MeasurementUnit: "pc"}, cart.User.Ingredients[0])
	assert.Equal(t, xmlIngredient{Name: "Flour", Amount: 300, MeasurementUnit: "g"}, cart.User.Ingredients[1])
}

func TestRenderEmptyCart(t *testing.T) {
	report := NewReport("Bob", reportDate, nil, nil)

	content, _, err := report.Render(FormatText)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Ingredients:")

	xmlContent, _, err := report.Render(FormatXML)
	require.NoError(t, err)
	var cart xmlShoppingCart
	require.NoError(t, xml.Unmarshal(xmlContent, &cart))
	assert.Empty(t, cart.User.Ingredients)
}

func TestRenderUnsupportedFormat(t *testing.T) {
	_, _, err := sampleReport().Render("pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
