package service

import "testing"

func TestParsePrice(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 0},
		{"empty string", "", 0},
		{"zero", 0, 0},
		{"plain float", 12.5, 12.5},
		{"int", 7, 7},
		{"negative number clamps", -3.2, 0},
		{"decimal comma", "100,50", 100.50},
		{"decimal period", "100.50", 100.50},
		{"currency prefix", "$ 1250,75", 1250.75},
		{"trailing noise", "99,90 c/IVA", 99.90},
		{"integer string", "42", 42},
		{"leading dot", ".5", 0.5},
		{"garbage", "N/A", 0},
		{"dash only", "-", 0},
		{"spaces", "   ", 0},
		// documented lossy behavior: first comma becomes the decimal
		// point, the residue past the second separator is discarded
		{"thousands separator", "1,234.56", 1.234},
		{"double comma", "1,2,3", 1.2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParsePrice(tc.in); got != tc.want {
				t.Fatalf("ParsePrice(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParsePriceNeverNegative(t *testing.T) {
	for _, v := range []any{-1, -0.01, "-15,5", "(100)", -99999.0} {
		if got := ParsePrice(v); got < 0 {
			t.Fatalf("ParsePrice(%v) = %v, want >= 0", v, got)
		}
	}
}

func TestParsePriceIdempotent(t *testing.T) {
	for _, v := range []any{"100,50", "1,234.56", 77.7, "abc", nil} {
		once := ParsePrice(v)
		if twice := ParsePrice(once); twice != once {
			t.Fatalf("ParsePrice not idempotent for %v: %v != %v", v, twice, once)
		}
	}
}
