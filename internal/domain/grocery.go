package domain

import "slices"

// GroceryItem is one line of a grocery list.
// SourceRecipeIDs records which recipes put the item on the list.
type GroceryItem struct {
	ID              string   `json:"id" validate:"required"`
	Name            string   `json:"name" validate:"required"`
	IsCompleted     bool     `json:"is_completed"`
	Quantity        *string  `json:"quantity,omitempty"`
	SourceRecipeIDs []string `json:"source_recipe_ids"`
}

// AddSource records recipeID as a contributor. Returns false if already present.
func (i *GroceryItem) AddSource(recipeID string) bool {
	if slices.Contains(i.SourceRecipeIDs, recipeID) {
		return false
	}
	i.SourceRecipeIDs = append(i.SourceRecipeIDs, recipeID)
	return true
}

// GroceryList is the payload of a grocery-list draft.
type GroceryList struct {
	Title string        `json:"title"`
	Items []GroceryItem `json:"items" validate:"unique=ID,dive"`
}

// SearchText returns the item names on the list.
func (g *GroceryList) SearchText() []string {
	names := make([]string, 0, len(g.Items))
	for _, item := range g.Items {
		names = append(names, item.Name)
	}
	return names
}
