package sexp

import "testing"

func TestDecimalRoundTrip(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.5", "1.5"},
		{"0", "0"},
		{"-0", "0"},
		{"-0.0", "0"},
		{"0.1", "0.1"},
		{"1.50", "1.5"},
		{"01.5", "1.5"},
		{"-1.27", "-1.27"},
		{"0.000001", "0.000001"},
		{"123456.789", "123456.789"},
		{"+2", "2"},
		{".5", "0.5"},
		{"3.", "3"},
	}

	for _, tt := range tests {
		d, err := ParseDecimal(tt.in)
		if err != nil {
			t.Errorf("ParseDecimal(%q): %v", tt.in, err)
			continue
		}
		if got := d.String(); got != tt.want {
			t.Errorf("ParseDecimal(%q).String() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecimalInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.3", "1e5", "-", "--1", "1,5"} {
		if _, err := ParseDecimal(in); err == nil {
			t.Errorf("ParseDecimal(%q) succeeded, want error", in)
		}
	}
}

func TestDecimalArithmetic(t *testing.T) {
	a, _ := ParseDecimal("1.5")
	b, _ := ParseDecimal("0.25")

	if got := a.Add(b).String(); got != "1.75" {
		t.Errorf("1.5 + 0.25 = %q, want 1.75", got)
	}
	if got := a.Sub(b).String(); got != "1.25" {
		t.Errorf("1.5 - 0.25 = %q, want 1.25", got)
	}
	if got := a.Neg().String(); got != "-1.5" {
		t.Errorf("-(1.5) = %q, want -1.5", got)
	}
	if got := a.Half().String(); got != "0.75" {
		t.Errorf("1.5 / 2 = %q, want 0.75", got)
	}
	if a.Cmp(b) != 1 || b.Cmp(a) != -1 || a.Cmp(a) != 0 {
		t.Error("Cmp ordering wrong")
	}
}

func TestDecimalRepeatedEdits(t *testing.T) {
	// Translating back and forth must return to the exact start value,
	// which is the whole point of not using float64 here.
	d, _ := ParseDecimal("0.1")
	step, _ := ParseDecimal("0.2")
	for i := 0; i < 1000; i++ {
		d = d.Add(step)
	}
	for i := 0; i < 1000; i++ {
		d = d.Sub(step)
	}
	if got := d.String(); got != "0.1" {
		t.Errorf("after 2000 edits: %q, want 0.1", got)
	}
}

func TestDecimalFromFloat(t *testing.T) {
	if got := FromFloat(1.5).String(); got != "1.5" {
		t.Errorf("FromFloat(1.5) = %q", got)
	}
	if got := FromFloat(0.1 + 0.2).String(); got != "0.3" {
		t.Errorf("FromFloat(0.1+0.2) = %q, want 0.3", got)
	}
	if got := FromInt(-3).String(); got != "-3" {
		t.Errorf("FromInt(-3) = %q", got)
	}
}

func TestDecimalExcessPrecision(t *testing.T) {
	// 7th fractional digit rounds half away from zero
	d, err := ParseDecimal("0.12345678")
	if err != nil {
		t.Fatalf("ParseDecimal: %v", err)
	}
	if got := d.String(); got != "0.123457" {
		t.Errorf("got %q, want 0.123457", got)
	}
}
