package qrcode

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	qrc "github.com/skip2/go-qrcode"

	internal "github.com/mohspitality/hospitality-management/internal"
)

// Renderer turns one URL into an image. Split out so tests can swap in a
// stub instead of encoding real PNGs.
type Renderer interface {
	RenderPNG(content string, size int, foreground, background color.Color) ([]byte, error)
}

type PNGRenderer struct{}

func NewPNGRenderer() *PNGRenderer {
	return &PNGRenderer{}
}

func (PNGRenderer) RenderPNG(content string, size int, foreground, background color.Color) ([]byte, error) {
	code, err := qrc.New(content, qrc.Medium)
	if err != nil {
		return nil, err
	}
	code.ForegroundColor = foreground
	code.BackgroundColor = background
	return code.PNG(size)
}

var namedColors = map[string]color.RGBA{
	"black":  {0, 0, 0, 255},
	"white":  {255, 255, 255, 255},
	"red":    {255, 0, 0, 255},
	"green":  {0, 128, 0, 255},
	"blue":   {0, 0, 255, 255},
	"gray":   {128, 128, 128, 255},
	"yellow": {255, 255, 0, 255},
	"orange": {255, 165, 0, 255},
	"purple": {128, 0, 128, 255},
}

// ParseColor accepts a named color or #RRGGBB hex. Empty input falls back.
func ParseColor(s string, fallback color.Color) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return fallback, nil
	}
	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	hexStr := strings.TrimPrefix(s, "#")
	if len(hexStr) == 6 {
		r, errR := strconv.ParseUint(hexStr[0:2], 16, 8)
		g, errG := strconv.ParseUint(hexStr[2:4], 16, 8)
		b, errB := strconv.ParseUint(hexStr[4:6], 16, 8)
		if errR == nil && errG == nil && errB == nil {
			return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}, nil
		}
	}

	return nil, internal.NewValidationError(fmt.Sprintf("unrecognized color %q", s), internal.ErrCodeValidationFailed)
}
