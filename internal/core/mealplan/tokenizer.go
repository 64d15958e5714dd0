package mealplan

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// 開頭的數量（可帶單位）與其後以字母開始的名稱
var quantityPattern = regexp.MustCompile(`(?i)^(\d+(?:[.,]\d+)?(?:\s*(?:kg|g|dl|ml|cl|l|stk|spsk|tsk|fed|ds|pk)\.?(?:\s|$))?)\s*(\p{L}.*)$`)

// Tokenizer 將食譜的食材文字切成單一食材
// Exclusions 以完整單字比對，nil 表示不排除任何食材
type Tokenizer struct {
	Exclusions []string
}

// Tokenize 以逗號與分號切分，保留原始片段
func (t Tokenizer) Tokenize(text string) []Ingredient {
	fragments := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';'
	})

	ingredients := make([]Ingredient, 0, len(fragments))
	for _, fragment := range fragments {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		ing := parseFragment(fragment)
		if t.excluded(ing.Name) {
			continue
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients
}

func parseFragment(fragment string) Ingredient {
	ing := Ingredient{OriginalText: fragment, Name: fragment}
	if m := quantityPattern.FindStringSubmatch(fragment); m != nil {
		ing.QuantityText = strings.TrimSpace(m[1])
		ing.Name = strings.TrimSpace(m[2])
	}
	return ing
}

func (t Tokenizer) excluded(name string) bool {
	if len(t.Exclusions) == 0 {
		return false
	}
	padded := " " + normalizeName(name) + " "
	for _, ex := range t.Exclusions {
		if strings.Contains(padded, " "+normalizeName(ex)+" ") {
			return true
		}
	}
	return false
}

// normalizeName 比對用的名稱：NFC、小寫、去除前後空白
func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}
