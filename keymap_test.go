package main

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	for _, c := range []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"255,25,25,255", color.RGBA{R: 255, G: 25, B: 25, A: 255}, true},
		{"0,0,0,0", color.RGBA{}, true},
		{" 1, 2, 3, 4", color.RGBA{R: 1, G: 2, B: 3, A: 4}, true},
		{"255,25,25", color.RGBA{}, false},
		{"255,25,25,255,0", color.RGBA{}, false},
		{"255,25,red,255", color.RGBA{}, false},
		{"256,0,0,0", color.RGBA{}, false},
		{"", color.RGBA{}, false},
	} {
		got, err := parseColor(c.in)
		if ok := err == nil; ok != c.ok {
			t.Errorf("parseColor(%q) error: %v, want ok: %v", c.in, err, c.ok)
			continue
		}
		if err == nil && got != c.want {
			t.Errorf("parseColor(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseKeymap(t *testing.T) {
	km, err := parseKeymap(defaultKeys)
	if err != nil {
		t.Fatalf("parseKeymap(%q): %v", defaultKeys, err)
	}
	for pad, r := range map[byte]rune{0: 'x', 1: '1', 5: 'w', 0xf: 'v'} {
		if got := km[r]; got != pad {
			t.Errorf("km[%q] = %x, want %x", r, got, pad)
		}
	}

	for _, bad := range []string{
		"",
		"x123",
		"x123qweasdzc4rfvv", // too long
		"x123qweasdzc4rfx",  // 'x' bound twice
	} {
		if _, err := parseKeymap(bad); err == nil {
			t.Errorf("parseKeymap(%q) succeeded, want error", bad)
		}
	}
}
