package mealplan

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	priceNumber = regexp.MustCompile(`\d+(?:[.,]\d+)*`)
	// "1.000"、"12.500"：非 0 開頭、單一分隔符後恰好三位數
	loneThousands = regexp.MustCompile(`^[1-9]\d{0,2}[.,]\d{3}$`)
)

// 代表「價格未提供」的文字
var unavailablePrices = []string{"se pris", "see price", "pris i butik"}

// ParsePrice 從 "49.00 kr."、"10.-"、"1.299,95" 等文字取出價格，無法解析時為 0
func ParsePrice(text string) float64 {
	v, _ := parsePriceChecked(text)
	return v
}

// parsePriceChecked 額外回報文字是否可辨識
func parsePriceChecked(text string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" || s == "-" {
		return 0, true
	}
	for _, placeholder := range unavailablePrices {
		if strings.Contains(s, placeholder) {
			return 0, true
		}
	}

	loc := priceNumber.FindStringIndex(s)
	if loc == nil {
		return 0, false
	}
	token := s[loc[0]:loc[1]]
	if rest := s[loc[1]:]; wholeKroner(rest) || (krSuffix(rest) && loneThousands.MatchString(token)) {
		token = thousandsOnly(token)
	}
	v, err := strconv.ParseFloat(normalizeDecimal(token), 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// normalizeDecimal 統一為 "." 小數點；兩種分隔符都出現時最後一個是小數點
func normalizeDecimal(token string) string {
	lastDot := strings.LastIndex(token, ".")
	lastComma := strings.LastIndex(token, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		decimal, thousands := ".", ","
		if lastComma > lastDot {
			decimal, thousands = ",", "."
		}
		token = strings.ReplaceAll(token, thousands, "")
		return strings.Replace(token, decimal, ".", 1)
	case strings.Count(token, ".") > 1:
		return strings.ReplaceAll(token, ".", "")
	case strings.Count(token, ",") > 1:
		return strings.ReplaceAll(token, ",", "")
	default:
		return strings.Replace(token, ",", ".", 1)
	}
}

// wholeKroner 數字後接 ",-" 或 ".-" 表示整數克朗，數字內的分隔符都是千分位
func wholeKroner(rest string) bool {
	return strings.HasPrefix(rest, ",-") || strings.HasPrefix(rest, ".-")
}

// krSuffix 數字後緊接 "kr" 貨幣單位
func krSuffix(rest string) bool {
	return strings.HasPrefix(strings.TrimSpace(rest), "kr")
}

// thousandsOnly 移除千分位分隔符
func thousandsOnly(token string) string {
	return strings.NewReplacer(".", "", ",", "").Replace(token)
}

// FormatPrice 價格的標準文字格式，ParsePrice(FormatPrice(x)) == x
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
