package cell

import "strconv"

// Address converts 1-based (row, col) coordinates into an A1-style label,
// e.g. (1,1) → "A1", (3,28) → "AB3". It is a pure function of its inputs.
// Out-of-range coordinates (row or col < 1) produce an empty string.
func Address(row, col int) string {
	if row < 1 || col < 1 {
		return ""
	}
	return ColumnLetters(col) + strconv.Itoa(row)
}

// ColumnLetters converts a 1-based column number to spreadsheet letters:
// 1 → "A", 26 → "Z", 27 → "AA".
func ColumnLetters(col int) string {
	var buf []byte
	for col > 0 {
		col--
		buf = append([]byte{byte('A' + col%26)}, buf...)
		col /= 26
	}
	return string(buf)
}
