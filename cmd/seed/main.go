// Package main seeds a Pantry badger data directory with sample recipes,
// meal plans, and a grocery list derived from one of them.
//
// Usage:
//
//	DATA_PATH=~/Pantry/data go run ./cmd/seed
//	DATA_PATH=~/Pantry/data go run ./cmd/seed --weeks 4
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/listenupapp/pantry/internal/dirty"
	"github.com/listenupapp/pantry/internal/domain"
	"github.com/listenupapp/pantry/internal/logger"
	"github.com/listenupapp/pantry/internal/recipe"
	"github.com/listenupapp/pantry/internal/service"
	"github.com/listenupapp/pantry/internal/store"
	"github.com/listenupapp/pantry/internal/validation"
)

var weeks = flag.Int("weeks", 2, "Number of weekly meal plans to create")

var recipes = []domain.Recipe{
	{ID: "pancakes", Title: "Pancakes", Ingredients: []domain.Ingredient{
		{Name: "Flour", Quantity: "2", Unit: "cups"},
		{Name: "Milk", Quantity: "1.5", Unit: "cups"},
		{Name: "Eggs", Quantity: "2"},
		{Name: "Butter", Quantity: "2", Unit: "tbsp"},
	}},
	{ID: "tomato-soup", Title: "Tomato Soup", Ingredients: []domain.Ingredient{
		{Name: "Tomatoes", Quantity: "800", Unit: "g"},
		{Name: "Onion", Quantity: "1"},
		{Name: "Garlic", Quantity: "2", Unit: "cloves"},
		{Name: "Vegetable stock", Quantity: "500", Unit: "ml"},
	}},
	{ID: "pasta-bake", Title: "Pasta Bake", Ingredients: []domain.Ingredient{
		{Name: "Penne", Quantity: "400", Unit: "g"},
		{Name: "Tomatoes", Quantity: "400", Unit: "g"},
		{Name: "Mozzarella", Quantity: "1", Unit: "ball"},
		{Name: "garlic ", Quantity: "1", Unit: "clove"},
	}},
	{ID: "fried-rice", Title: "Fried Rice", Ingredients: []domain.Ingredient{
		{Name: "Rice", Quantity: "2", Unit: "cups"},
		{Name: "Eggs", Quantity: "3"},
		{Name: "Peas", Quantity: "1", Unit: "cup"},
		{Name: "Soy sauce"},
	}},
}

var dayLabels = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func main() {
	flag.Parse()

	log := logger.New(logger.Config{Environment: "development"})

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/Pantry/data")
	}
	dbPath := filepath.Join(dataPath, "badger")

	log.Info("Opening database", "path", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatal("Failed to open store", "error", err)
	}
	defer s.Close()

	ctx := context.Background()
	drafts := store.NewDrafts(s, log.WithComponent("drafts").Logger, store.Options{})
	catalog := recipe.NewCatalog(s, log.WithComponent("recipes").Logger)
	svc := service.NewDraftService(drafts, catalog, dirty.New(), nil, validation.New(), log.Logger)

	for i := range recipes {
		if err := svc.PutRecipe(ctx, &recipes[i]); err != nil {
			log.Fatal("Failed to store recipe", "recipe_id", recipes[i].ID, "error", err)
		}
	}
	log.Info("Recipes stored", "count", len(recipes))

	var firstPlan string
	for w := range *weeks {
		weekLog := log.WithField("week", w+1)
		plan := weekPlan(w)
		res, err := svc.SaveMealPlan(ctx, plan, store.SaveOptions{Name: fmt.Sprintf("Week %d", w+1)})
		if err != nil {
			weekLog.Fatal("Failed to save meal plan", "error", err)
		}
		weekLog.WithDraft(domain.KindMealPlan, res.ID).Info("Meal plan saved", "days", len(plan.Days))
		if firstPlan == "" {
			firstPlan = res.ID
		}
	}

	if firstPlan == "" {
		log.Info("No meal plans requested, skipping grocery list")
		return
	}

	gen, err := svc.GenerateGroceryList(ctx, firstPlan, service.GenerateRequest{Save: true})
	if err != nil {
		log.Fatal("Failed to generate grocery list", "meal_plan_id", firstPlan, "error", err)
	}
	log.WithDraft(domain.KindGroceryList, gen.Draft.ID).Info("Grocery list saved",
		"items", len(gen.List.Items),
		"skipped", len(gen.SkippedRecipeIDs),
	)

	stats, err := svc.StorageStats(ctx)
	if err != nil {
		log.Fatal("Failed to compute stats", "error", err)
	}
	log.Info("Seed complete",
		"meal_plans", stats.DraftCounts[domain.KindMealPlan],
		"grocery_lists", stats.DraftCounts[domain.KindGroceryList],
		"bytes", stats.ApproximateTotalBytes,
	)
}

// weekPlan rotates through the recipes so consecutive weeks differ.
func weekPlan(week int) domain.MealPlan {
	plan := domain.MealPlan{Days: make([]domain.Day, 0, len(dayLabels))}
	for d, label := range dayLabels {
		r := recipes[(week+d)%len(recipes)]
		day := domain.Day{Label: label, Recipes: []domain.RecipeRef{{RecipeID: r.ID, Title: r.Title}}}
		if d == len(dayLabels)-1 {
			// Sunday references a recipe that was never added, so derivation reports it.
			day.Recipes = append(day.Recipes, domain.RecipeRef{RecipeID: "roast-dinner", Title: "Roast Dinner"})
		}
		plan.Days = append(plan.Days, day)
	}
	return plan
}
