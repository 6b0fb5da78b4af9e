// Package money formats amounts held in minor currency units (fen).
// Prices never leave integer arithmetic; formatting is display only.
package money

import "fmt"

// Format renders an amount of fen as a yuan string, e.g. 19800 -> "¥198.00".
func Format(fen int64) string {
	sign := ""
	if fen < 0 {
		sign = "-"
		fen = -fen
	}
	return fmt.Sprintf("%s¥%d.%02d", sign, fen/100, fen%100)
}
