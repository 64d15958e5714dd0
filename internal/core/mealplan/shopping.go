package mealplan

import (
	"meal-planner/internal/pkg/common"
)

type shoppingEntry struct {
	item  ShoppingItem
	total float64
}

// BuildShoppingList 依商店區段合併所有天的食材
// 同名食材價格相加、計算次數，任一次特價即標為特價
func BuildShoppingList(days []MealPlanDay, tables *Tables) ShoppingList {
	if tables == nil {
		tables = DefaultTables()
	}

	sections := make(map[string][]*shoppingEntry)
	index := make(map[string]map[string]*shoppingEntry)

	for _, day := range days {
		for _, ing := range day.Ingredients {
			key := normalizeName(ing.Name)
			if key == "" {
				continue
			}
			storeKey := tables.StoreKey(ing.Store)
			if index[storeKey] == nil {
				index[storeKey] = make(map[string]*shoppingEntry)
			}

			entry, ok := index[storeKey][key]
			if !ok {
				entry = &shoppingEntry{item: ShoppingItem{Item: ing.Name}}
				index[storeKey][key] = entry
				sections[storeKey] = append(sections[storeKey], entry)
			}
			entry.total += ing.Price
			entry.item.OccurrenceCount++
			entry.item.OnSale = entry.item.OnSale || ing.OnSale
			if entry.item.DealInfo == nil && ing.DealInfo != nil {
				info := *ing.DealInfo
				entry.item.DealInfo = &info
			}
		}
	}

	list := make(ShoppingList, len(sections))
	for storeKey, entries := range sections {
		if len(entries) == 0 {
			continue
		}
		items := make([]ShoppingItem, 0, len(entries))
		for _, e := range entries {
			e.item.Price = common.RoundTo(e.total, 2)
			items = append(items, e.item)
		}
		list[storeKey] = items
	}
	return list
}

// ItemCount 清單中的項目總數
func (l ShoppingList) ItemCount() int {
	n := 0
	for _, items := range l {
		n += len(items)
	}
	return n
}
