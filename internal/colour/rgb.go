// Package colour provides the colour math used to derive gradients:
// hex parsing, complements, random colours and normalised RGBA blending.
package colour

import (
	"fmt"
	"strconv"
)

// RGB represents a colour as three 8-bit channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a lowercase, zero padded hex string (e.g., "#0a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Invert returns the per-channel inverse (255 - v) of the colour.
func (rgb RGB) Invert() RGB {
	return RGB{R: 255 - rgb.R, G: 255 - rgb.G, B: 255 - rgb.B}
}

// Normalised converts the colour to normalised RGBA with full opacity.
func (rgb RGB) Normalised() RGBA {
	return RGBA{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
		A: 1,
	}
}

// FromPacked splits a 24-bit packed integer into its channels.
// Red occupies bits 16-23, green bits 8-15 and blue bits 0-7.
func FromPacked(v uint32) RGB {
	return RGB{
		R: uint8((v >> 16) & 0xff), // #nosec G115 -- masked to a byte
		G: uint8((v >> 8) & 0xff),  // #nosec G115 -- masked to a byte
		B: uint8(v & 0xff),         // #nosec G115 -- masked to a byte
	}
}

// DecodeHex decodes a "#RRGGBB" string without validation.
// The caller is trusted to pass a well-formed colour: any channel that fails
// to parse, or is missing, decodes as zero.
func DecodeHex(hex string) RGB {
	return RGB{
		R: channel(hex, 1),
		G: channel(hex, 3),
		B: channel(hex, 5),
	}
}

func channel(hex string, at int) uint8 {
	if len(hex) < at+2 {
		return 0
	}
	v, err := strconv.ParseUint(hex[at:at+2], 16, 8)
	if err != nil {
		return 0
	}
	return uint8(v)
}

// ParseHex is the validating counterpart of DecodeHex, used where colours
// arrive from users rather than from the panel.
func ParseHex(hex string) (RGB, error) {
	if len(hex) != 7 || hex[0] != '#' {
		return RGB{}, fmt.Errorf("invalid hex colour %q: expected #RRGGBB", hex)
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", hex, err)
	}
	return FromPacked(uint32(v)), nil // #nosec G115 -- 24 bits parsed
}

// Complement returns the complementary colour of hex, computed by inverting
// each channel. Malformed input is not rejected.
func Complement(hex string) string {
	return DecodeHex(hex).Invert().Hex()
}

// HexToNormalised decodes hex into normalised RGBA with alpha fixed at 1.
func HexToNormalised(hex string) RGBA {
	return DecodeHex(hex).Normalised()
}
