package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"meal-planner/internal/infrastructure/config"
)

const dealCSV = "\ufeffCategory,Deal Name,Amount,Price\n" +
	"Meat & Poultry,Hakket oksekød 4-7%,500g,49.00 kr.\n" +
	"Dairy & Eggs,\"Galbani mozzarella, 125g\",125g,\"16,00 kr.\"\n" +
	",,,\n" +
	"Pantry,,1kg,10.-\n"

const recipeCSV = "id,title,ingredients,persons\n" +
	"arla-1,Lasagne,\"Hakket oksekød, mozzarella, lasagneplader\",4\n" +
	",Boller i karry,\"Hakket kød, løg, karry\",6 personer\n" +
	"arla-3,,\"løg\",2\n"

func TestParseDeals(t *testing.T) {
	deals, err := ParseDeals(strings.NewReader(dealCSV), "Coop")
	if err != nil {
		t.Fatalf("ParseDeals returned error: %v", err)
	}
	if len(deals) != 2 {
		t.Fatalf("expected 2 deals, got %d: %+v", len(deals), deals)
	}
	if deals[0].Name != "Hakket oksekød 4-7%" || deals[0].Category != "Meat & Poultry" {
		t.Errorf("unexpected first deal: %+v", deals[0])
	}
	if deals[1].Name != "Galbani mozzarella, 125g" || deals[1].PriceText != "16,00 kr." {
		t.Errorf("unexpected second deal: %+v", deals[1])
	}
	for _, d := range deals {
		if d.Store != "Coop" {
			t.Errorf("expected store Coop, got %q", d.Store)
		}
	}
}

func TestParseRecipes(t *testing.T) {
	recipes, err := ParseRecipes(strings.NewReader(recipeCSV), "Arla")
	if err != nil {
		t.Fatalf("ParseRecipes returned error: %v", err)
	}
	if len(recipes) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(recipes))
	}
	if recipes[0].ID != "arla-1" || recipes[0].Servings != 4 || recipes[0].Source != "Arla" {
		t.Errorf("unexpected first recipe: %+v", recipes[0])
	}
	if recipes[1].ID != "arla-2-boller_i_karry" {
		t.Errorf("expected derived id, got %q", recipes[1].ID)
	}
	if recipes[1].Servings != 6 {
		t.Errorf("expected 6 servings, got %d", recipes[1].Servings)
	}
}

func TestLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "coop.csv"), []byte(dealCSV), 0644); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recipes.csv":
			w.Write([]byte(recipeCSV))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	t.Run("FilesAndHTTP", func(t *testing.T) {
		loader, err := NewLoader(config.CatalogConfig{
			Dir:           dir,
			DealSources:   "Coop=coop.csv;Netto=missing.csv",
			RecipeSources: "Arla=" + srv.URL + "/recipes.csv",
			FetchTimeout:  5 * time.Second,
		})
		if err != nil {
			t.Fatalf("NewLoader returned error: %v", err)
		}
		snap, err := loader.Load(context.Background())
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if len(snap.Deals) != 2 {
			t.Errorf("expected 2 deals, got %d", len(snap.Deals))
		}
		if len(snap.Recipes) != 2 {
			t.Errorf("expected 2 recipes, got %d", len(snap.Recipes))
		}
		if got := snap.Stores(); len(got) != 1 || got[0] != "Coop" {
			t.Errorf("expected stores [Coop], got %v", got)
		}
		if snap.Version == "" {
			t.Error("expected snapshot version to be set")
		}
	})

	t.Run("SampleFallback", func(t *testing.T) {
		loader, err := NewLoader(config.CatalogConfig{
			Dir:           dir,
			DealSources:   "Coop=nope.csv",
			RecipeSources: "Arla=" + srv.URL + "/missing.csv",
			UseSamples:    true,
		})
		if err != nil {
			t.Fatalf("NewLoader returned error: %v", err)
		}
		snap, err := loader.Load(context.Background())
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if len(snap.Deals) != len(SampleDeals()) || len(snap.Recipes) != len(SampleRecipes()) {
			t.Errorf("expected sample data, got %d deals and %d recipes", len(snap.Deals), len(snap.Recipes))
		}
	})

	t.Run("NothingLoaded", func(t *testing.T) {
		loader, err := NewLoader(config.CatalogConfig{Dir: dir, DealSources: "Coop=nope.csv"})
		if err != nil {
			t.Fatalf("NewLoader returned error: %v", err)
		}
		if _, err := loader.Load(context.Background()); err == nil {
			t.Fatal("expected error when no data and samples disabled")
		}
	})
}

func TestStoreSwap(t *testing.T) {
	store := NewStore(nil)
	if store.Current() != nil {
		t.Fatal("expected empty store")
	}

	first := NewSnapshot("v1", SampleDeals(), SampleRecipes())
	if prev := store.Swap(first); prev != nil {
		t.Errorf("expected no previous snapshot, got %v", prev.Version)
	}
	second := NewSnapshot("v2", SampleDeals()[:1], nil)
	if prev := store.Swap(second); prev != first {
		t.Error("expected first snapshot to be returned on swap")
	}
	if store.Current().Version != "v2" {
		t.Errorf("expected current version v2, got %s", store.Current().Version)
	}
	// the replaced snapshot is untouched
	if len(first.Deals) != len(SampleDeals()) {
		t.Error("previous snapshot was mutated")
	}
}

func TestStoreStats(t *testing.T) {
	snap := NewSnapshot("v", SampleDeals(), nil)
	stats := snap.StoreStats()
	if len(stats) != len(snap.Stores()) {
		t.Fatalf("expected one stat per store, got %d", len(stats))
	}
	total := 0
	for i, s := range stats {
		total += s.DealCount
		if i > 0 && stats[i-1].DealCount < s.DealCount {
			t.Errorf("stats not sorted by deal count: %+v", stats)
		}
	}
	if total != len(snap.Deals) {
		t.Errorf("expected %d deals in stats, got %d", len(snap.Deals), total)
	}
}

func TestSnapshotStoresSkipsUnknown(t *testing.T) {
	snap := NewSnapshot("v", []Deal{
		{Name: "Løg", PriceText: "5", Store: "Unknown"},
		{Name: "Mælk", PriceText: "10", Store: "Netto"},
		{Name: "Ost", PriceText: "20", Store: ""},
		{Name: "Ris", PriceText: "15", Store: " unknown "},
		{Name: "Smør", PriceText: "25", Store: "Netto"},
	}, nil)
	if got := snap.Stores(); len(got) != 1 || got[0] != "Netto" {
		t.Errorf("expected stores [Netto], got %v", got)
	}
}
