package amount

import (
	"errors"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1", want: "1"},
		{in: " 0.5 ", want: "0.5"},
		{in: "2.000", want: "2"},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "0", wantErr: true},
		{in: "-1", wantErr: true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("Parse(%q) expected error, got %s", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tt.in, err)
		}
		if Format(got) != tt.want {
			t.Fatalf("Parse(%q) = %s, want %s", tt.in, Format(got), tt.want)
		}
	}
}

func TestToBaseUnits(t *testing.T) {
	lamports, err := ParseBaseUnits("1", 9)
	if err != nil {
		t.Fatalf("ParseBaseUnits failed: %v", err)
	}
	if lamports.Cmp(big.NewInt(1_000_000_000)) != 0 {
		t.Fatalf("expected 1e9 lamports, got %s", lamports)
	}

	wei, err := ParseBaseUnits("0.5", 18)
	if err != nil {
		t.Fatalf("ParseBaseUnits failed: %v", err)
	}
	want, _ := new(big.Int).SetString("500000000000000000", 10)
	if wei.Cmp(want) != 0 {
		t.Fatalf("expected %s wei, got %s", want, wei)
	}

	truncated, err := ToBaseUnits(decimal.RequireFromString("1.0000000009"), 9)
	if err != nil {
		t.Fatalf("ToBaseUnits failed: %v", err)
	}
	if truncated.Cmp(big.NewInt(1_000_000_000)) != 0 {
		t.Fatalf("expected truncation to 1e9, got %s", truncated)
	}

	if _, err := ToBaseUnits(decimal.RequireFromString("0.0000000001"), 9); !errors.Is(err, ErrTooPrecise) {
		t.Fatalf("expected ErrTooPrecise, got %v", err)
	}
}

func TestFromBaseUnits(t *testing.T) {
	got := FromBaseUnits(big.NewInt(1_500_000_000), 9)
	if Format(got) != "1.5" {
		t.Fatalf("expected 1.5, got %s", Format(got))
	}
	if !FromBaseUnits(nil, 9).IsZero() {
		t.Fatal("expected zero for nil units")
	}
}
