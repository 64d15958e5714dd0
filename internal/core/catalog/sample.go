package catalog

// SampleDeals 沒有 CSV 檔時使用的示範優惠
func SampleDeals() []Deal {
	return []Deal{
		{Category: "Meat & Poultry", Name: "Hakket oksekød 4-7%", AmountText: "500g", PriceText: "49.00 kr.", Store: "Coop"},
		{Category: "Dairy & Eggs", Name: "Galbani mozzarella", AmountText: "125g", PriceText: "16.00 kr.", Store: "Coop"},
		{Category: "Organic", Name: "Økologiske gulerødder", AmountText: "1kg", PriceText: "10.-", Store: "REMA 1000"},
		{Category: "Meat & Poultry", Name: "Dansk kyllingebryst", AmountText: "400g", PriceText: "29.00 kr.", Store: "Netto"},
		{Category: "Dairy & Eggs", Name: "Luftig skyr", AmountText: "150g", PriceText: "8.00 kr.", Store: "Lidl"},
		{Category: "Fruits & Vegetables", Name: "Gule løg", AmountText: "1kg", PriceText: "7,95 kr.", Store: "Føtex"},
		{Category: "Pantry", Name: "Jasminris", AmountText: "1kg", PriceText: "18.00 kr.", Store: "Lidl"},
		{Category: "Fish & Seafood", Name: "Laksefilet", AmountText: "250g", PriceText: "39.95 kr.", Store: "Netto"},
		{Category: "Dairy & Eggs", Name: "Sødmælk", AmountText: "1l", PriceText: "11,50 kr.", Store: "REMA 1000"},
		{Category: "Pantry", Name: "Flåede tomater", AmountText: "400g", PriceText: "5.00 kr.", Store: "Føtex"},
	}
}

// SampleRecipes 沒有 CSV 檔時使用的示範食譜
func SampleRecipes() []Recipe {
	return []Recipe{
		{ID: "sample-lasagne", Title: "Lasagne", Servings: 4, IngredientsText: "Hakket oksekød, mozzarella, lasagneplader, tomatpuré", Source: "Arla"},
		{ID: "sample-boller-i-karry", Title: "Boller i karry", Servings: 4, IngredientsText: "Hakket kød, løg, karry, mælk, ris", Source: "Arla"},
		{ID: "sample-kyllingebryst", Title: "Kyllingebryst med salat", Servings: 4, IngredientsText: "Kyllingebryst, salat, yoghurt, urter", Source: "Valdemarsro"},
		{ID: "sample-laks", Title: "Ovnbagt laks med ris", Servings: 4, IngredientsText: "Laksefilet, ris, citron, dild", Source: "Valdemarsro"},
		{ID: "sample-tomatsuppe", Title: "Tomatsuppe med linser", Servings: 4, IngredientsText: "Flåede tomater, røde linser, løg, gulerødder, bouillon", Source: "Arla"},
	}
}
