// Package shoppinglist turns the recipes in a user's cart into a flat,
// deduplicated ingredient list and renders it as a downloadable report.
// Everything here is a pure transform over data already fetched by the
// persistence layer, safe for concurrent use.
package shoppinglist

import "sort"

// IngredientLine is one (ingredient, amount) contribution taken from a
// cart recipe, or an aggregated total after grouping.
type IngredientLine struct {
	Name            string
	MeasurementUnit string
	Amount          int
}

// RecipeSource names a cart recipe and its author for the report footer.
type RecipeSource struct {
	Name   string
	Author string
}

// Aggregate groups contributions by (name, measurement unit), summing
// amounts per group. Iteration order of the input does not affect the
// totals. The result is sorted by name ascending for reproducible output.
func Aggregate(lines []IngredientLine) []IngredientLine {
	type identity struct {
		name string
		unit string
	}

	totals := make(map[identity]int, len(lines))
	for _, line := range lines {
		totals[identity{line.Name, line.MeasurementUnit}] += line.Amount
	}

	grouped := make([]IngredientLine, 0, len(totals))
	for id, amount := range totals {
		grouped = append(grouped, IngredientLine{
			Name:            id.name,
			MeasurementUnit: id.unit,
			Amount:          amount,
		})
	}

	sort.Slice(grouped, func(i, j int) bool {
		if grouped[i].Name != grouped[j].Name {
			return grouped[i].Name < grouped[j].Name
		}
		return grouped[i].MeasurementUnit < grouped[j].MeasurementUnit
	})
	return grouped
}
