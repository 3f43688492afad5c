package codec

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Color is a non premultiplied RGBA value.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xff}
}

// Opaque reports whether the alpha channel is fully set.
func (c Color) Opaque() bool {
	return c.A == 0xff
}

// IsZero reports whether c is the zero value, transparent black.
func (c Color) IsZero() bool {
	return c == Color{}
}

// Hex returns the color as #rrggbb, or #rrggbbaa when not opaque.
func (c Color) Hex() string {
	if c.Opaque() {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c Color) String() string {
	return c.Hex()
}

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A)
	a |= a << 8
	r = uint32(c.R)
	r |= r << 8
	r = r * a / 0xffff
	g = uint32(c.G)
	g |= g << 8
	g = g * a / 0xffff
	b = uint32(c.B)
	b |= b << 8
	b = b * a / 0xffff
	return
}

// ParseHex parses #rgb, #rrggbb, #rrggbbaa and the 0x prefixed forms.
// Failures are ErrInvalidColor.
func ParseHex(s string) (Color, error) {
	digits := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(digits, "#"):
		digits = digits[1:]
	case strings.HasPrefix(digits, "0x"), strings.HasPrefix(digits, "0X"):
		digits = digits[2:]
	default:
		return Color{}, formatError(ErrInvalidColor, nil, map[string]any{
			"value":  s,
			"reason": "missing # or 0x prefix",
		})
	}

	if len(digits) == 3 {
		digits = string([]byte{
			digits[0], digits[0],
			digits[1], digits[1],
			digits[2], digits[2],
		})
	}

	if len(digits) != 6 && len(digits) != 8 {
		return Color{}, formatError(ErrInvalidColor, nil, map[string]any{
			"value":  s,
			"reason": "expected 3, 6 or 8 hex digits",
		})
	}

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return Color{}, formatError(ErrInvalidColor, err, map[string]any{"value": s})
	}

	if len(digits) == 6 {
		return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// ColorCodec writes colors as hex strings. It reads hex strings and packed
// 0xRRGGBB integers.
type ColorCodec struct{}

// Encode implements Codec.
func (ColorCodec) Encode(c Color) ([]byte, error) {
	return strconv.AppendQuote(nil, c.Hex()), nil
}

// Decode implements Codec.
func (ColorCodec) Decode(data []byte) (Color, error) {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 {
		return Color{}, formatError(ErrInvalidColor, nil, map[string]any{"reason": "empty value"})
	}

	switch {
	case raw[0] == '"':
		s, err := strconv.Unquote(string(raw))
		if err != nil {
			return Color{}, formatError(ErrInvalidColor, err, nil)
		}
		return ParseHex(s)

	case raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'):
		v, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return Color{}, formatError(ErrInvalidColor, err, map[string]any{"value": string(raw)})
		}
		if v < 0 || v > 0xffffff {
			return Color{}, formatError(ErrInvalidColor, nil, map[string]any{
				"value":  v,
				"reason": "packed color out of range",
			})
		}
		return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}

	return Color{}, formatError(ErrInvalidColor, nil, map[string]any{
		"value":  string(raw),
		"reason": "expected string or integer",
	})
}

var _ Codec[Color] = ColorCodec{}

// PackedColorCodec writes colors as a single packed 0xAARRGGBB integer.
// Strings are still read as hex.
type PackedColorCodec struct{}

// Encode implements Codec.
func (PackedColorCodec) Encode(c Color) ([]byte, error) {
	v := int64(c.A)<<24 | int64(c.R)<<16 | int64(c.G)<<8 | int64(c.B)
	return strconv.AppendInt(nil, v, 10), nil
}

// Decode implements Codec.
func (PackedColorCodec) Decode(data []byte) (Color, error) {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || raw[0] == '"' {
		return ColorCodec{}.Decode(raw)
	}

	v, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return Color{}, formatError(ErrInvalidColor, err, map[string]any{"value": string(raw)})
	}
	if v < 0 || v > 0xffffffff {
		return Color{}, formatError(ErrInvalidColor, nil, map[string]any{
			"value":  v,
			"reason": "packed color out of range",
		})
	}
	return Color{A: uint8(v >> 24), R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

var _ Codec[Color] = PackedColorCodec{}
