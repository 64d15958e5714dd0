package mealplan

import (
	"reflect"
	"testing"

	"meal-planner/internal/core/catalog"
)

func TestFilterDeals(t *testing.T) {
	deals := []catalog.Deal{
		deal("Hakket oksekød", "49.00 kr.", "Meat & Poultry", "Coop"),
		deal("Gulerødder", "10.-", "Organic", "REMA 1000"),
		deal("Økologisk mælk", "12,00", "Dairy & Eggs", "Netto"),
		deal("Opvaskemiddel", "20.00", "Household", "Netto"),
		deal("Kaffe", "249.00 kr.", "Pantry", "Lidl"),
		deal("Laks", "Se pris", "Fish & Seafood", "Lidl"),
	}

	tests := []struct {
		name  string
		prefs Preferences
		opts  FilterOptions
		want  []string
	}{
		{
			name: "FoodOnly",
			opts: FilterOptions{MaxDealPrice: 200},
			want: []string{"Hakket oksekød", "Gulerødder", "Økologisk mælk", "Laks"},
		},
		{
			name: "NoPriceCeiling",
			want: []string{"Hakket oksekød", "Gulerødder", "Økologisk mælk", "Kaffe", "Laks"},
		},
		{
			name:  "Organic",
			prefs: Preferences{Organic: true},
			opts:  FilterOptions{MaxDealPrice: 200},
			want:  []string{"Gulerødder", "Økologisk mælk"},
		},
		{
			name:  "LessMeat",
			prefs: Preferences{LessMeat: true},
			opts:  FilterOptions{MaxDealPrice: 200},
			want:  []string{"Gulerødder", "Økologisk mælk", "Laks"},
		},
		{
			name:  "PreferredStores",
			prefs: Preferences{PreferredStores: []string{"netto", " REMA 1000 "}},
			opts:  FilterOptions{MaxDealPrice: 200},
			want:  []string{"Gulerødder", "Økologisk mælk"},
		},
		{
			name:  "EmptyResult",
			prefs: Preferences{Organic: true, PreferredStores: []string{"Coop"}},
			opts:  FilterOptions{MaxDealPrice: 200},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterDeals(deals, tt.prefs, tt.opts)
			if got == nil {
				t.Fatal("expected non-nil result")
			}
			names := make([]string, 0, len(got))
			for _, d := range got {
				names = append(names, d.Name)
			}
			if !reflect.DeepEqual(names, tt.want) {
				t.Errorf("got %v, want %v", names, tt.want)
			}
		})
	}
}

func TestFilterDealsWholeKronerCeiling(t *testing.T) {
	deals := []catalog.Deal{
		deal("Oksemørbrad hel", "1.299,-", "Meat & Poultry", "Føtex"),
		deal("Oksekød hakket", "29,00", "Meat & Poultry", "Netto"),
	}
	got := FilterDeals(deals, Preferences{}, FilterOptions{MaxDealPrice: 200})
	if len(got) != 1 || got[0].Name != "Oksekød hakket" {
		t.Fatalf("expected only the Netto deal under the ceiling, got %+v", got)
	}

	m := newTestMatcher()
	match := m.Match(Ingredient{Name: "oksekød"}, got, NewStoreUsage([]string{"Føtex", "Netto"}), &fixedRandom{})
	if match.Store != "Netto" || match.Price != 29 {
		t.Errorf("unexpected match: %+v", match)
	}
}
