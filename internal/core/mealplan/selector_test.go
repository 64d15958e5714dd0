package mealplan

import (
	"errors"
	"reflect"
	"testing"

	"meal-planner/internal/core/catalog"
	"meal-planner/internal/pkg/common"
)

func processedRecipe(id string, ratio float64, stores int, cost float64, ingredient string) ProcessedRecipe {
	storeNames := []string{"Coop", "Netto", "Lidl", "REMA 1000", "Føtex"}
	return ProcessedRecipe{
		Recipe:      catalog.Recipe{ID: id, Title: id},
		Ingredients: []MatchedIngredient{{Ingredient: Ingredient{Name: ingredient}}},
		Cost:        cost,
		DealRatio:   ratio,
		StoresUsed:  storeNames[:stores],
	}
}

func recipeIDs(recipes []ProcessedRecipe) []string {
	ids := make([]string, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.Recipe.ID)
	}
	return ids
}

func TestSelectRecipesOrdering(t *testing.T) {
	recipes := []ProcessedRecipe{
		processedRecipe("cheap-low", 0.2, 1, 40, "kylling"),
		processedRecipe("high", 0.8, 1, 90, "oksekød"),
		processedRecipe("high-more-stores", 0.8, 3, 120, "svinekød"),
		processedRecipe("high-cheaper", 0.8, 3, 60, "laks"),
		processedRecipe("too-expensive", 1, 5, 250, "linser"),
	}

	got, err := SelectRecipes(recipes, 4, &fixedRandom{}, SelectOptions{MaxCost: 200})
	if err != nil {
		t.Fatalf("SelectRecipes returned error: %v", err)
	}
	want := []string{"high-cheaper", "high-more-stores", "high", "cheap-low"}
	if !reflect.DeepEqual(recipeIDs(got), want) {
		t.Errorf("got %v, want %v", recipeIDs(got), want)
	}
}

func TestSelectRecipesShuffle(t *testing.T) {
	recipes := []ProcessedRecipe{
		processedRecipe("a", 0.9, 1, 10, "kylling"),
		processedRecipe("b", 0.5, 1, 10, "oksekød"),
		processedRecipe("c", 0.1, 1, 10, "laks"),
	}
	got, err := SelectRecipes(recipes, 2, &reverseRandom{}, SelectOptions{})
	if err != nil {
		t.Fatalf("SelectRecipes returned error: %v", err)
	}
	if want := []string{"c", "b"}; !reflect.DeepEqual(recipeIDs(got), want) {
		t.Errorf("got %v, want %v", recipeIDs(got), want)
	}
	// input order is untouched
	if recipes[0].Recipe.ID != "a" {
		t.Error("input slice was reordered")
	}
}

func TestSelectRecipesCategoryLimit(t *testing.T) {
	t.Run("ShortPlan", func(t *testing.T) {
		recipes := []ProcessedRecipe{
			processedRecipe("a", 0.5, 1, 10, "kylling"),
			processedRecipe("b", 0.5, 1, 10, "kyllingebryst"),
			processedRecipe("c", 0.5, 1, 10, "oksekød"),
			processedRecipe("d", 0.5, 1, 10, "pasta"),
		}
		got, err := SelectRecipes(recipes, 3, &fixedRandom{}, SelectOptions{})
		if err != nil {
			t.Fatal(err)
		}
		if want := []string{"a", "c", "d"}; !reflect.DeepEqual(recipeIDs(got), want) {
			t.Errorf("got %v, want %v", recipeIDs(got), want)
		}
	})

	t.Run("LongPlanAllowsTwo", func(t *testing.T) {
		recipes := []ProcessedRecipe{
			processedRecipe("a", 0.5, 1, 10, "kylling"),
			processedRecipe("b", 0.5, 1, 10, "kylling"),
			processedRecipe("c", 0.5, 1, 10, "kylling"),
		}
		got, err := SelectRecipes(recipes, 6, &fixedRandom{}, SelectOptions{})
		if err != nil {
			t.Fatal(err)
		}
		if want := []string{"a", "b", "c", "a", "b", "c"}; !reflect.DeepEqual(recipeIDs(got), want) {
			t.Errorf("got %v, want %v", recipeIDs(got), want)
		}
	})
}

func TestSelectRecipesPadding(t *testing.T) {
	recipes := []ProcessedRecipe{
		processedRecipe("a", 0.9, 1, 10, "kylling"),
		processedRecipe("b", 0.5, 1, 10, "oksekød"),
		processedRecipe("c", 0.1, 1, 10, "laks"),
	}
	got, err := SelectRecipes(recipes, 7, &fixedRandom{}, SelectOptions{})
	if err != nil {
		t.Fatalf("SelectRecipes returned error: %v", err)
	}
	if want := []string{"a", "b", "c", "a", "b", "c", "a"}; !reflect.DeepEqual(recipeIDs(got), want) {
		t.Errorf("got %v, want %v", recipeIDs(got), want)
	}
}

func TestSelectRecipesEmpty(t *testing.T) {
	tests := []struct {
		name    string
		recipes []ProcessedRecipe
	}{
		{"NoRecipes", nil},
		{"AllTooExpensive", []ProcessedRecipe{processedRecipe("a", 1, 1, 500, "kylling")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SelectRecipes(tt.recipes, 3, &fixedRandom{}, SelectOptions{MaxCost: 200})
			if !errors.Is(err, common.ErrEmptyCatalog) {
				t.Errorf("expected ErrEmptyCatalog, got %v", err)
			}
		})
	}
}

func TestProteinOf(t *testing.T) {
	tables := DefaultTables()
	tests := []struct {
		ingredients []string
		want        string
	}{
		{[]string{"løg", "Kyllingebryst"}, "chicken"},
		{[]string{"Hakket oksekød", "bacon"}, "beef"},
		{[]string{"bacon", "løg"}, "pork"},
		{[]string{"Laksefilet", "ris"}, "fish"},
		{[]string{"røde linser", "løg"}, "vegetarian"},
		{[]string{"pasta", "løg"}, "other"},
	}
	for _, tt := range tests {
		ings := make([]MatchedIngredient, 0, len(tt.ingredients))
		for _, n := range tt.ingredients {
			ings = append(ings, MatchedIngredient{Ingredient: Ingredient{Name: n}})
		}
		if got := tables.ProteinOf(ings); got != tt.want {
			t.Errorf("ProteinOf(%v) = %s, want %s", tt.ingredients, got, tt.want)
		}
	}
}
