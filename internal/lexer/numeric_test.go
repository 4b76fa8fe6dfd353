package lexer

import "testing"

func TestCanWidenMatrix(t *testing.T) {
	cats := []Category{CatBinary, CatOctal, CatDecimal, CatHexPoint, CatHex, CatPoint}

	for _, c := range cats {
		if !canWiden(c, c) {
			t.Errorf("canWiden(%s, %s) = false, want true (reflexive)", c, c)
		}
	}

	tests := []struct {
		a, b Category
		want bool
	}{
		{CatBinary, CatOctal, true},
		{CatBinary, CatDecimal, true},
		{CatBinary, CatHex, true},
		{CatBinary, CatPoint, true},
		{CatOctal, CatBinary, false},
		{CatDecimal, CatHexPoint, true},
		{CatHexPoint, CatHex, true},
		{CatDecimal, CatPoint, true},
		{CatPoint, CatHex, false},
		{CatHex, CatPoint, false},
		{CatHex, CatBinary, false},
	}
	for _, tt := range tests {
		if got := canWiden(tt.a, tt.b); got != tt.want {
			t.Errorf("canWiden(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDecodeNumber(t *testing.T) {
	tests := []struct {
		raw     string
		wantInt int64
		wantFlt float64
		isFloat bool
	}{
		{"101b", 5, 0, false},
		{"17o", 15, 0, false},
		{"42d", 42, 0, false},
		{"FFh", 255, 0, false},
		{"42", 42, 0, false},
		{"1.5", 0, 1.5, true},
		{"1.5e2", 0, 150, true},
	}
	for _, tt := range tests {
		v, err := decodeNumber(tt.raw)
		if err != nil {
			t.Fatalf("decodeNumber(%q) error: %v", tt.raw, err)
		}
		if tt.isFloat {
			if v.Kind != NumberFloat || v.Flt != tt.wantFlt {
				t.Errorf("decodeNumber(%q) = %+v, want float %v", tt.raw, v, tt.wantFlt)
			}
		} else {
			if v.Kind != NumberInteger || v.Int != tt.wantInt {
				t.Errorf("decodeNumber(%q) = %+v, want int %v", tt.raw, v, tt.wantInt)
			}
		}
	}
}
