package entities

// Ingredient identity for shopping list grouping is the
// (name, measurement unit) pair, enforced by the composite unique index.
type Ingredient struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"size:128;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasurementUnit string `gorm:"size:64;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`
}
