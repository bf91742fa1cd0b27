package domain

import "errors"

var (
	MessageSuccessGetIngredients      = "success get ingredients"
	MessageSuccessGetIngredientDetail = "success get ingredient detail"

	MessageFailedGetIngredients      = "failed to get ingredients"
	MessageFailedGetIngredientDetail = "failed to get ingredient detail"

	ErrIngredientNotFound  = errors.New("ingredient not found")
	ErrDuplicateIngredient = errors.New("duplicate ingredients in request")
	ErrNoIngredients       = errors.New("recipe must have at least one ingredient")
)

type IngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}
