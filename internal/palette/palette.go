// Package palette defines the named color maps a grid can be rendered
// through. Ids are stable so saved configuration keeps meaning.
package palette

import (
	"errors"
	"fmt"
	"image/color"
)

// ID identifies a palette.
type ID int

const (
	Autumn          ID = 0
	Bone            ID = 1
	Jet             ID = 2
	Winter          ID = 3
	Rainbow         ID = 4
	Ocean           ID = 5
	Summer          ID = 6
	Spring          ID = 7
	Cool            ID = 8
	HSV             ID = 9
	Pink            ID = 10
	Hot             ID = 11
	Cividis         ID = 17
	Twilight        ID = 18
	TwilightShifted ID = 19
	Turbo           ID = 20
)

// Default is the palette selected at startup.
const Default = Autumn

// ErrUnknownPalette is returned for names or ids outside the table.
var ErrUnknownPalette = errors.New("unknown palette")

type entry struct {
	name  string
	id    ID
	curve curve
}

// ordered is the selector order shown to users.
var ordered = []entry{
	{"autumn", Autumn, autumnCurve},
	{"bone", Bone, boneCurve},
	{"jet", Jet, jetCurve},
	{"winter", Winter, winterCurve},
	{"hot", Hot, hotCurve},
	{"hsv", HSV, hsvCurve},
	{"pink", Pink, pinkCurve},
	{"ocean", Ocean, oceanCurve},
	{"rainbow", Rainbow, rainbowCurve},
	{"spring", Spring, springCurve},
	{"summer", Summer, summerCurve},
	{"cool", Cool, coolCurve},
	{"cividis", Cividis, cividisCurve},
	{"twilight", Twilight, twilightCurve},
	{"twilight_shifted", TwilightShifted, twilightShiftedCurve},
	{"turbo", Turbo, turboCurve},
}

var (
	byName = map[string]int{}
	byID   = map[ID]int{}
	tables = map[ID][]color.RGBA{}
	gray   = buildTable(grayCurve)
)

func init() {
	for i, e := range ordered {
		byName[e.name] = i
		byID[e.id] = i
		tables[e.id] = buildTable(e.curve)
	}
}

// Names returns the palette names in selector order.
func Names() []string {
	names := make([]string, len(ordered))
	for i, e := range ordered {
		names[i] = e.name
	}
	return names
}

// IDs returns the palette ids in selector order.
func IDs() []ID {
	ids := make([]ID, len(ordered))
	for i, e := range ordered {
		ids[i] = e.id
	}
	return ids
}

// Lookup resolves a palette name.
func Lookup(name string) (ID, error) {
	i, ok := byName[name]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownPalette, name)
	}
	return ordered[i].id, nil
}

// Valid reports whether id names a palette.
func (id ID) Valid() bool {
	_, ok := byID[id]
	return ok
}

func (id ID) String() string {
	if i, ok := byID[id]; ok {
		return ordered[i].name
	}
	return fmt.Sprintf("palette(%d)", int(id))
}

// Next steps through the selector order, wrapping at both ends. An unknown
// id steps from the first entry.
func Next(id ID, step int) ID {
	i, ok := byID[id]
	if !ok {
		i = 0
	}
	n := len(ordered)
	i = ((i+step)%n + n) % n
	return ordered[i].id
}

// Table returns the 256-entry lookup table for id. Unknown ids get a
// grayscale ramp. The returned slice is shared and must not be modified.
func Table(id ID) []color.RGBA {
	if t, ok := tables[id]; ok {
		return t
	}
	return gray
}

// At maps a single level through the palette.
func At(id ID, level uint8) color.RGBA {
	return Table(id)[level]
}
