package cell

import "testing"

func TestAddress(t *testing.T) {
	tests := []struct {
		row, col int
		want     string
	}{
		{1, 1, "A1"},
		{1, 2, "B1"},
		{10, 26, "Z10"},
		{3, 27, "AA3"},
		{3, 28, "AB3"},
		{100, 52, "AZ100"},
		{1, 703, "AAA1"},
		{0, 1, ""},
		{1, 0, ""},
	}

	for _, tt := range tests {
		if got := Address(tt.row, tt.col); got != tt.want {
			t.Errorf("Address(%d, %d) = %q, want %q", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestNew_TextCell(t *testing.T) {
	c := New("f1", "Sales", 2, 3, "  ABC Corporation   Berhad ")

	if c.Address != "C2" {
		t.Errorf("Address = %q, want C2", c.Address)
	}
	if c.Kind != KindText {
		t.Errorf("Kind = %q, want text", c.Kind)
	}
	if c.NormText != "abc corporation berhad" {
		t.Errorf("NormText = %q", c.NormText)
	}
	if c.Numeric != nil {
		t.Errorf("Numeric = %v, want nil", *c.Numeric)
	}
}

func TestNew_NumericCell(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"123", 123},
		{"1,250,000", 1250000},
		{"-42.5", -42.5},
		{"0.001", 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c := New("f1", "PNL", 1, 1, tt.raw)
			if c.Kind != KindNumeric {
				t.Fatalf("Kind = %q, want numeric", c.Kind)
			}
			if c.Numeric == nil || *c.Numeric != tt.want {
				t.Errorf("Numeric = %v, want %v", c.Numeric, tt.want)
			}
		})
	}
}

func TestNew_EmptyCell(t *testing.T) {
	c := New("f1", "Sales", 1, 1, "   ")
	if c.Kind != KindEmpty {
		t.Errorf("Kind = %q, want empty", c.Kind)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello world"},
		{"  TRIM me  ", "trim me"},
		{"multi\t \nspace", "multi space"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseNumber_Rejects(t *testing.T) {
	for _, s := range []string{"", "abc", "12abc", "1.2.3", "-"} {
		if _, ok := ParseNumber(s); ok {
			t.Errorf("ParseNumber(%q) = ok, want not a number", s)
		}
	}
}

func TestFile_Counts(t *testing.T) {
	f := &File{
		ID: "f1",
		Sheets: []Sheet{
			{Name: "Sales", CellCount: 10},
			{Name: "PNL", CellCount: 5},
		},
	}

	if got := f.CellCount(); got != 15 {
		t.Errorf("CellCount() = %d, want 15", got)
	}
	names := f.SheetNames()
	if len(names) != 2 || names[0] != "Sales" || names[1] != "PNL" {
		t.Errorf("SheetNames() = %v", names)
	}
}
