package domain

import (
	"fmt"
	"time"
)

// Kind identifies one of the two draft document kinds.
// The set is closed; a draft's kind never changes after creation.
type Kind string

// Draft kinds.
const (
	KindMealPlan    Kind = "meal_plan"
	KindGroceryList Kind = "grocery_list"
)

// Kinds lists every draft kind in a stable order.
var Kinds = []Kind{KindMealPlan, KindGroceryList}

// Valid reports whether k is a known draft kind.
func (k Kind) Valid() bool {
	return k == KindMealPlan || k == KindGroceryList
}

// IDPrefix returns the prefix used for generated draft ids of this kind.
func (k Kind) IDPrefix() string {
	switch k {
	case KindMealPlan:
		return "mp"
	case KindGroceryList:
		return "gl"
	default:
		return "draft"
	}
}

// Label returns a human-readable name for the kind.
func (k Kind) Label() string {
	switch k {
	case KindMealPlan:
		return "Meal plan"
	case KindGroceryList:
		return "Grocery list"
	default:
		return string(k)
	}
}

// ParseKind converts a string to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown draft kind %q", s)
	}
	return k, nil
}

// Payload is the set of document types a draft can carry.
type Payload interface {
	MealPlan | GroceryList
}

// Draft is a persisted, user-editable document of a single kind.
// The repository serializes the whole struct; it never inspects Payload.
type Draft[P Payload] struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Name      string    `json:"name"`
	Payload   P         `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Meta returns the listing metadata for the draft.
func (d *Draft[P]) Meta() DraftMeta {
	return DraftMeta{
		ID:        d.ID,
		Kind:      d.Kind,
		Name:      d.Name,
		UpdatedAt: d.UpdatedAt,
	}
}

// DraftMeta is the enumeration view of a draft.
type DraftMeta struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultDraftName derives a display name from the creation time,
// e.g. "Meal plan 2026-10-17 18:04".
func DefaultDraftName(kind Kind, at time.Time) string {
	return kind.Label() + " " + at.Format("2006-01-02 15:04")
}
