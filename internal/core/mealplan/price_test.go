package mealplan

import "testing"

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"49.00 kr.", 49},
		{"10.-", 10},
		{"Se pris", 0},
		{"see price", 0},
		{"Pris i butik", 0},
		{"-", 0},
		{"", 0},
		{"16,00 kr.", 16},
		{"7,95", 7.95},
		{"kr. 12,50", 12.5},
		{"1.299,95 kr.", 1299.95},
		{"1,299.95", 1299.95},
		{"1.000.000", 1000000},
		{"1.299,-", 1299},
		{"1.299.-", 1299},
		{"1.000 kr", 1000},
		{"12.500 kr.", 12500},
		{"1.299", 1.299},
		{"0.500 kr", 0.5},
		{"2 for 30 kr.", 2},
		{"gratis", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParsePrice(tt.in); got != tt.want {
				t.Errorf("ParsePrice(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParsePriceChecked(t *testing.T) {
	if _, ok := parsePriceChecked("Se pris"); !ok {
		t.Error("placeholder should be recognized")
	}
	if _, ok := parsePriceChecked("gratis"); ok {
		t.Error("text without a number should be reported as unparseable")
	}
}

func TestPriceRoundTrip(t *testing.T) {
	inputs := []string{"49.00 kr.", "10.-", "7,95", "1.299,95 kr.", "0,5", "Se pris", "0.1", "123456.789", "1.299,-", "1.000 kr"}
	for _, in := range inputs {
		first := ParsePrice(in)
		if second := ParsePrice(FormatPrice(first)); second != first {
			t.Errorf("round trip of %q: %v then %v", in, first, second)
		}
		if first < 0 {
			t.Errorf("ParsePrice(%q) returned negative %v", in, first)
		}
	}
}
