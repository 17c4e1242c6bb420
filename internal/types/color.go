package types

import "fmt"

// Color is an RGB track or marker color as Serato stores it.
//
// Serato encodes colors as three bytes (red, green, blue). The legacy
// markers tag packs them through the serato32 encoding; Markers2 stores
// them raw. Both decode to this type.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// String returns the color in #RRGGBB form.
func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
