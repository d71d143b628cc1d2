package core

// Color is the foreground color of a screen cell.
// Values map onto ANSI 256-color codes in the platform layer.
type Color uint8

// Palette used by the runner presentation.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// ParseHexColor maps a "#rrggbb" string to the nearest palette entry.
// Unknown or malformed strings return ColorDefault.
func ParseHexColor(hex string) Color {
	if len(hex) != 7 || hex[0] != '#' {
		return ColorDefault
	}
	var rgb [3]int
	for i := 0; i < 3; i++ {
		hi, ok1 := hexNibble(hex[1+i*2])
		lo, ok2 := hexNibble(hex[2+i*2])
		if !ok1 || !ok2 {
			return ColorDefault
		}
		rgb[i] = hi<<4 | lo
	}
	r, g, b := rgb[0], rgb[1], rgb[2]

	switch {
	case r > 200 && g > 200 && b > 200:
		return ColorBrightWhite
	case r < 130 && g < 130 && b < 140 && Abs(r-g) < 20 && Abs(g-b) < 30:
		return ColorGray
	case r > 200 && g > 120 && b < 60:
		return ColorOrange
	case r > g && r > b && g < 100:
		return ColorBrightRed
	case g > r && g > b:
		return ColorBrightGreen
	case b > r && b > g && r > 100:
		return ColorBrightMagenta
	case b > r && b > g:
		return ColorBrightBlue
	case r > 200 && g > 200:
		return ColorBrightYellow
	default:
		return ColorDefault
	}
}

func hexNibble(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}
