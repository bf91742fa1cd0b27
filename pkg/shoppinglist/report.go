package shoppinglist

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	FormatText = "txt"
	FormatXML  = "xml"

	dateLayout = "02.01.2006"
)

var ErrUnsupportedFormat = errors.New("unsupported shopping list format")

// Report is a fully aggregated shopping list ready for rendering.
type Report struct {
	UserName    string
	Date        time.Time
	Ingredients []IngredientLine
	Recipes     []RecipeSource
}

// NewReport aggregates raw ingredient contributions into a report. An
// empty cart produces a report with no ingredient entries; that is a
// valid state, not an error.
func NewReport(userName string, date time.Time, lines []IngredientLine, recipes []RecipeSource) Report {
	return Report{
		UserName:    userName,
		Date:        date,
		Ingredients: Aggregate(lines),
		Recipes:     recipes,
	}
}

// Render produces the report content and its MIME type. An empty format
// defaults to text; anything other than the recognized formats is a
// caller configuration error.
func (r Report) Render(format string) ([]byte, string, error) {
	switch format {
	case "", FormatText:
		return r.renderText(), "text/plain; charset=utf-8", nil
	case FormatXML:
		content, err := r.renderXML()
		if err != nil {
			return nil, "", err
		}
		return content, "application/xml; charset=utf-8", nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func (r Report) renderText() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "Shopping list for: %s\n", r.UserName)
	fmt.Fprintf(&b, "Date: %s\n\n", r.Date.Format(dateLayout))

	b.WriteString("Ingredients:\n")
	for i, line := range r.Ingredients {
		fmt.Fprintf(&b, "%d. %s - %d %s\n", i+1, line.Name, line.Amount, line.MeasurementUnit)
	}

	b.WriteString("\nRecipes:\n")
	for _, recipe := range r.Recipes {
		fmt.Fprintf(&b, "- %s (@%s)\n", recipe.Name, recipe.Author)
	}
	return []byte(b.String())
}

type xmlIngredient struct {
	Name            string `xml:"Name"`
	Amount          int    `xml:"Amount"`
	MeasurementUnit string `xml:"MeasurementUnit"`
}

type xmlUser struct {
	Name        string          `xml:"name,attr"`
	Date        string          `xml:"date,attr"`
	Ingredients []xmlIngredient `xml:"Ingredient"`
}

type xmlShoppingCart struct {
	XMLName xml.Name `xml:"ShoppingCart"`
	User    xmlUser  `xml:"User"`
}

func (r Report) renderXML() ([]byte, error) {
	cart := xmlShoppingCart{
		User: xmlUser{
			Name:        r.UserName,
			Date:        r.Date.Format(dateLayout),
			Ingredients: make([]xmlIngredient, 0, len(r.Ingredients)),
		},
	}
	for _, line := range r.Ingredients {
		cart.User.Ingredients = append(cart.User.Ingredients, xmlIngredient{
			Name:            line.Name,
			Amount:          line.Amount,
			MeasurementUnit: line.MeasurementUnit,
		})
	}

	content, err := xml.MarshalIndent(cart, "", "\t")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), content...), nil
}
