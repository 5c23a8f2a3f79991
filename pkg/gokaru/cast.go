package gokaru

import (
	"strconv"
	"strings"
)

// Cast is a set of thumbnail transform flags. Flags combine with bitwise OR;
// zero means no transform.
type Cast int

const (
	// CastResizeTensile stretches into the exact width and height ignoring aspect ratio
	CastResizeTensile Cast = 2
	// CastResizePrecise keeps aspect ratio using the higher dimension
	CastResizePrecise Cast = 4
	// CastResizeInverse keeps aspect ratio using the lower dimension
	CastResizeInverse Cast = 8
	// CastTrim removes edges matching the corner pixel color
	CastTrim Cast = 16
	// CastExtent sets the canvas to exactly width x height after resize
	CastExtent Cast = 32
	// CastOpaqueBackground fills the background with opaque white
	CastOpaqueBackground Cast = 64
	// CastTransparentBackground makes the background transparent
	CastTransparentBackground Cast = 128
	// CastTrimPadding adds padding around a trimmed image
	CastTrimPadding Cast = 256
)

var castNames = []struct {
	flag Cast
	name string
}{
	{CastResizeTensile, "RESIZE_TENSILE"},
	{CastResizePrecise, "RESIZE_PRECISE"},
	{CastResizeInverse, "RESIZE_INVERSE"},
	{CastTrim, "TRIM"},
	{CastExtent, "EXTENT"},
	{CastOpaqueBackground, "OPAQUE_BACKGROUND"},
	{CastTransparentBackground, "TRANSPARENT_BACKGROUND"},
	{CastTrimPadding, "TRIM_PADDING"},
}

// Has reports whether every bit of flag is set.
func (c Cast) Has(flag Cast) bool {
	return flag != 0 && c&flag == flag
}

// String lists the set flags joined by "|". Unknown bits are rendered as a
// trailing decimal value.
func (c Cast) String() string {
	if c == 0 {
		return "0"
	}
	if c < 0 {
		return strconv.Itoa(int(c))
	}
	var parts []string
	rest := c
	for _, n := range castNames {
		if c.Has(n.flag) {
			parts = append(parts, n.name)
			rest &^= n.flag
		}
	}
	if rest != 0 {
		parts = append(parts, strconv.Itoa(int(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseCast accepts a decimal value or flag names separated by "," or "|".
// Names are case-insensitive and "-" may stand in for "_".
func ParseCast(s string) (Cast, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, negativeArgument("cast")
		}
		return Cast(n), nil
	}

	var c Cast
	for _, field := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '|' }) {
		name := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(field), "-", "_"))
		if name == "" {
			continue
		}
		flag, ok := lookupCast(name)
		if !ok {
			return 0, &DomainError{Field: "cast flag", Value: field}
		}
		c |= flag
	}
	return c, nil
}

func lookupCast(name string) (Cast, bool) {
	for _, n := range castNames {
		if n.name == name {
			return n.flag, true
		}
	}
	return 0, false
}
