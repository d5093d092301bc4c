package core

// Color is a foreground color for a screen cell.
// Values map onto ANSI 256-color codes in the terminal renderer and onto
// RGB values in the PNG exporter.
type Color uint8

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
	ColorBrightWhite
	ColorOrange
	ColorBrown
	ColorGray
)
