package main

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// defaultKeys binds the standard 4x4 pad layout to the left of a QWERTY
// keyboard, one rune per pad in pad order 0-F.
const defaultKeys = "x123qweasdzc4rfv"

const defaultColor = "255,25,25,255"

func parseKeymap(s string) (map[rune]byte, error) {
	runes := []rune(s)
	if len(runes) != 16 {
		return nil, fmt.Errorf("keymap %q has %d keys, want 16", s, len(runes))
	}
	km := make(map[rune]byte, len(runes))
	for i, r := range runes {
		if _, ok := km[r]; ok {
			return nil, fmt.Errorf("keymap %q binds %q twice", s, r)
		}
		km[r] = byte(i)
	}
	return km, nil
}

func parseColor(s string) (color.RGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return color.RGBA{}, fmt.Errorf("color %q has %d values, want 4 (r,g,b,a)", s, len(parts))
	}
	var ch [4]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("color %q: bad value %q", s, p)
		}
		ch[i] = uint8(v)
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
