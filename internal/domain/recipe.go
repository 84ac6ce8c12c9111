package domain

import "strings"

// Ingredient is a single ingredient line of a recipe.
// Quantity and Unit are free text and may be empty.
type Ingredient struct {
	Name     string `json:"name" validate:"required"`
	Quantity string `json:"quantity,omitempty"`
	Unit     string `json:"unit,omitempty"`
}

// Annotation renders the quantity and unit as "2 cups", or "" when both are empty.
func (i Ingredient) Annotation() string {
	return strings.TrimSpace(strings.TrimSpace(i.Quantity) + " " + strings.TrimSpace(i.Unit))
}

// Recipe is a catalog entry that meal plans reference by id.
type Recipe struct {
	ID          string       `json:"id" validate:"required"`
	Title       string       `json:"title"`
	Ingredients []Ingredient `json:"ingredients" validate:"dive"`
}
