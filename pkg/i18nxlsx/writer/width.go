package writer

import "golang.org/x/text/width"

// displayWidth counts East Asian wide and fullwidth runes as two columns.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// columnWidth sizes a column to its widest cell plus padding, capped at limit.
func columnWidth(cells []string, limit float64) float64 {
	widest := 0
	for _, c := range cells {
		if w := displayWidth(c); w > widest {
			widest = w
		}
	}
	return min(float64(widest+2), limit)
}
