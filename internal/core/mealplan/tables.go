package mealplan

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// PseudoStore 未對應到任何優惠時的通用商店
const PseudoStore = "Almindelig"

// catchAllStoreKey 購物清單中非已知連鎖店的區段
const catchAllStoreKey = "almindelig"

// FoodCategories 視為食品的優惠分類
var FoodCategories = []string{
	"Meat & Poultry",
	"Dairy & Eggs",
	"Dairy & Cheese",
	"Fruits & Vegetables",
	"Fresh Produce (Fruits & Vegetables)",
	"Pantry",
	"Pantry Items",
	"Organic",
	"Fish & Seafood",
	"Bakery & Bread",
	"Beverages",
	"Frozen Foods",
}

const (
	meatCategory    = "Meat & Poultry"
	organicCategory = "Organic"
)

// PriceEstimate 關鍵字估價，依序比對，先符合者勝出
type PriceEstimate struct {
	Keyword string
	Price   float64
}

// ProteinCategory 主要蛋白質分類與其關鍵字
type ProteinCategory struct {
	Name     string
	Keywords []string
}

// InstructionTemplate 食譜名稱含任一關鍵字時使用的基本步驟
type InstructionTemplate struct {
	Keywords []string
	Steps    []string
}

// Tables 比對、估價、升級建議等設定表，建立 Planner 時注入
type Tables struct {
	Synonyms              map[string][]string
	PriceEstimates        []PriceEstimate
	StealthUpgrades       map[string]string
	DefaultStealthUpgrade string
	StoreAliases          map[string]string
	ProteinCategories     []ProteinCategory
	DefaultProtein        string
	PantryStaples         []string
	Instructions          []InstructionTemplate
	DefaultInstructions   []string
}

// DefaultPantryStaples 預設排除的基本調味料與食材
var DefaultPantryStaples = []string{
	"salt", "peber", "olie", "olivenolie", "rapsolie", "eddike", "mel", "hvedemel",
	"paprikapulver", "røget paprika", "spidskommen", "kanel", "oregano", "timian",
	"pepper", "oil", "olive oil", "vinegar", "flour",
}

// DefaultTables 丹麥超市資料使用的預設表
func DefaultTables() *Tables {
	return &Tables{
		Synonyms: map[string][]string{
			"oksekød":  {"hakket okse", "okse", "oksekød", "beef"},
			"kylling":  {"kylling", "kyllingefilet", "kyllingebryst", "kyllingeinderfilet", "chicken breast", "chicken fillet", "chicken"},
			"svinekød": {"svin", "hakket svin", "svinekød", "pork"},
			"mælk":     {"mælk", "sødmælk", "minimælk", "letmælk", "milk"},
			"ost":      {"ost", "mozzarella", "parmesan", "cheddar", "gouda", "cheese"},
			"æg":       {"æg", "eggs"},
			"løg":      {"løg", "gule løg", "rødløg", "onion"},
			"tomat":    {"tomat", "flåede tomater", "tomatpuré", "tomato"},
			"kartof":   {"kartof", "nye kartofler", "potato"},
			"gulerod":  {"gulerod", "gulerødder", "carrot"},
			"selleri":  {"selleri", "celery"},
			"pasta":    {"pasta", "spaghetti", "macaroni", "penne"},
			"ris":      {"jasminris", "basmatris", "rice"},
			"smør":     {"smør", "lurpak", "butter"},
			"fløde":    {"fløde", "piskefløde", "madlavningsfløde", "cream"},
			"yoghurt":  {"yoghurt", "græsk yoghurt", "skyr"},
			"bacon":    {"bacon"},
			"laks":     {"laks", "røget laks", "laksefilet", "salmon"},
			"torsk":    {"torsk", "torskefilet", "cod"},
		},
		PriceEstimates: []PriceEstimate{
			{"lasagneplader", 20}, {"hamburgerboller", 25}, {"flåede tomater", 12}, {"tomatpuré", 8},
			{"kokosmælk", 20}, {"hønsebouillon", 8}, {"madlavningsfløde", 18}, {"piskefløde", 22},
			{"hvedemel", 8}, {"hvidløg", 5},
			{"pasta", 15}, {"spaghetti", 15}, {"ris", 15},
			{"mel", 8}, {"salt", 5}, {"peber", 10},
			{"olie", 12}, {"smør", 25}, {"margarine", 20},
			{"fløde", 18}, {"mælk", 15}, {"yoghurt", 18}, {"skyr", 12},
			{"bouillon", 8}, {"karry", 12}, {"rasp", 10},
			{"brød", 20}, {"æble", 8}, {"citron", 8},
			{"persille", 10}, {"dild", 10}, {"basilikum", 12},
			{"ærter", 10}, {"spinat", 15},
		},
		StealthUpgrades: map[string]string{
			"lasagne":         "Skjult protein-boost: Bland 200g røde linser (kogt bløde) ind i kødsaucen. De bliver usynlige og øger protein med 30%.",
			"boller i karry":  "Skjulte grøntsager: Fintrev gulerødderne og bland direkte i kødfasen. Giver saftighed og vitaminer.",
			"frikadeller":     "Protein-power: Erstat 30% af kødet med kogte røde linser - usynlige og sundere.",
			"kylling i karry": "Grøntsags-boost: Tilsæt finthakket selleri og gulerødder til karrysovsen.",
			"carbonara":       "Fiber-upgrade: Brug fuldkornspasta og tilsæt finhakket broccoli til cremesovsen.",
			"pasta":           "Linse-trick: Bland kogte røde linser i kødsovsen - dobler proteinet uden smagsforskel.",
			"kyllingebryst":   "Yoghurt-protein: Lav marinade med græsk yoghurt for ekstra protein og mørhed.",
			"sandwich":        "Grønt boost: Tilsæt finhakket avocado eller spinat - øger vitaminer og fiber.",
			"suppe":           "Protein-power: Tilsæt røde linser til suppen - de koger op og bliver usynlige.",
			"fisk":            "Omega boost: Server med dampede broccoli-stilke for ekstra fiber og vitaminer.",
			"laks":            "Omega boost: Server med dampede broccoli-stilke for ekstra fiber og vitaminer.",
			"kød":             "Saftighedsboost: Bland fintrevne gulerødder i kødet for vitaminer og naturlig sødme.",
		},
		DefaultStealthUpgrade: "Naturlig opgradering: Brug økologiske ingredienser når muligt for bedre smag og sundhed.",
		StoreAliases: map[string]string{
			"coop":         "coop",
			"coop 365":     "coop",
			"superbrugsen": "coop",
			"kvickly":      "coop",
			"rema 1000":    "rema",
			"rema":         "rema",
			"lidl":         "lidl",
			"netto":        "netto",
			"føtex":        "foetex",
			"foetex":       "foetex",
			"fotex":        "foetex",
		},
		ProteinCategories: []ProteinCategory{
			{Name: "chicken", Keywords: []string{"kylling", "chicken", "kalkun"}},
			{Name: "beef", Keywords: []string{"oksekød", "okse", "beef", "kalv"}},
			{Name: "pork", Keywords: []string{"svinekød", "svin", "flæsk", "bacon", "skinke", "medister", "pork"}},
			{Name: "fish", Keywords: []string{"laks", "torsk", "fisk", "rejer", "tun", "makrel", "salmon", "cod"}},
			{Name: "vegetarian", Keywords: []string{"linser", "bønner", "kikærter", "tofu", "halloumi"}},
		},
		DefaultProtein: "other",
		PantryStaples:  DefaultPantryStaples,
		Instructions: []InstructionTemplate{
			{Keywords: []string{"lasagne"}, Steps: []string{
				"Steg kød og løg gyldne",
				"Tilsæt tomatprodukter og simrer",
				"Lag lasagne med kød, bechamel og ost",
				"Bag ved 180°C i 45 min",
			}},
			{Keywords: []string{"karry"}, Steps: []string{
				"Steg kød/kylling og løg",
				"Tilsæt karry og grøntsager",
				"Hæld væske i og simrer",
				"Server med ris",
			}},
			{Keywords: []string{"frikadeller", "boller"}, Steps: []string{
				"Bland alle ingredienser til en smidig masse",
				"Form til frikadeller/kødboller",
				"Steg gyldne på panden",
				"Server med kartofler og sovs",
			}},
			{Keywords: []string{"carbonara"}, Steps: []string{
				"Kog pasta al dente",
				"Steg bacon sprødt",
				"Bland æg, ost og fløde",
				"Vend det hele sammen og server",
			}},
			{Keywords: []string{"sandwich", "smørrebrød"}, Steps: []string{
				"Forbered alle ingredienser",
				"Smør brødet",
				"Læg pålæg pænt på",
				"Pynt og server",
			}},
			{Keywords: []string{"suppe"}, Steps: []string{
				"Sautér løg og grøntsager",
				"Tilsæt væske og bouillon",
				"Simrer til grøntsagerne er mørre",
				"Smag til og server",
			}},
		},
		DefaultInstructions: []string{
			"Forbered alle ingredienser",
			"Følg traditionel tilberedningsmetode",
			"Justér krydderier efter smag",
			"Server varmt",
		},
	}
}

// EstimatePrice 依估價表取得價格，找不到時回傳 fallback
func (t *Tables) EstimatePrice(name string, fallback float64) float64 {
	name = normalizeName(name)
	for _, e := range t.PriceEstimates {
		if strings.Contains(name, e.Keyword) {
			return e.Price
		}
	}
	return fallback
}

// StealthUpgradeFor 以食譜名稱中最長的關鍵字選擇升級建議
func (t *Tables) StealthUpgradeFor(title string) string {
	title = normalizeName(title)
	best := ""
	for key := range t.StealthUpgrades {
		if !strings.Contains(title, key) {
			continue
		}
		if len([]rune(key)) > len([]rune(best)) || (len([]rune(key)) == len([]rune(best)) && key < best) {
			best = key
		}
	}
	if best == "" {
		return t.DefaultStealthUpgrade
	}
	return t.StealthUpgrades[best]
}

// InstructionsFor 回傳食譜的基本烹調步驟
func (t *Tables) InstructionsFor(title string) []string {
	title = normalizeName(title)
	for _, tmpl := range t.Instructions {
		for _, kw := range tmpl.Keywords {
			if strings.Contains(title, kw) {
				return append([]string(nil), tmpl.Steps...)
			}
		}
	}
	return append([]string(nil), t.DefaultInstructions...)
}

// StoreKey 將商店名稱對應到購物清單區段
func (t *Tables) StoreKey(store string) string {
	if key, ok := t.StoreAliases[normalizeName(store)]; ok {
		return key
	}
	return catchAllStoreKey
}

// ProteinOf 依優先順序掃描食材名稱，第一個符合的分類勝出
func (t *Tables) ProteinOf(ingredients []MatchedIngredient) string {
	for _, cat := range t.ProteinCategories {
		for _, ing := range ingredients {
			name := normalizeName(ing.Name)
			for _, kw := range cat.Keywords {
				if strings.Contains(name, kw) {
					return cat.Name
				}
			}
		}
	}
	return t.DefaultProtein
}

// synonymMatch 同義詞表雙向比對，鍵只在字首比對，"ris" 不會命中 "frisk"
func (t *Tables) synonymMatch(item, deal string) bool {
	for key, synonyms := range t.Synonyms {
		for _, syn := range synonyms {
			if containsAtWordStart(item, key) && strings.Contains(deal, syn) {
				return true
			}
			if strings.Contains(item, syn) && containsAtWordStart(deal, key) {
				return true
			}
		}
	}
	return false
}

// containsAtWordStart sub 出現在 s 中某個字的開頭
func containsAtWordStart(s, sub string) bool {
	if sub == "" {
		return false
	}
	for offset := 0; offset < len(s); {
		i := strings.Index(s[offset:], sub)
		if i < 0 {
			return false
		}
		i += offset
		if i == 0 {
			return true
		}
		if r, _ := utf8.DecodeLastRuneInString(s[:i]); !unicode.IsLetter(r) {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		offset = i + size
	}
	return false
}
