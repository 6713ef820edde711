// Package style resolves semantic text style requests (alignment,
// emphasis, size) into concrete font descriptors.
//
// The style vocabulary is closed: four alignments, four emphasis levels,
// one font set of four faces. Resolution is a pure function of its
// inputs; resolving the same triple twice yields equal descriptors.
package style

import "fmt"

// DefaultSize is the body font size in points, used when a non-positive
// size is requested.
const DefaultSize = 12.0

// Alignment is a horizontal text alignment. The values are the
// single-letter codes understood by the rendering engine.
type Alignment string

const (
	Left    Alignment = "L"
	Right   Alignment = "R"
	Center  Alignment = "C"
	Justify Alignment = "J"
)

// Emphasis selects one of the four registered font faces.
type Emphasis int

const (
	Base Emphasis = iota
	Bold
	Italic
	BoldItalic
)

func (e Emphasis) String() string {
	switch e {
	case Base:
		return "base"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case BoldItalic:
		return "bold-italic"
	}
	return fmt.Sprintf("emphasis(%d)", int(e))
}

// Font identifies a font face by engine family name and style suffix.
type Font struct {
	Family string
	Style  string // "", "B", "I", "BI"
}

// FontSet is the fixed set of four faces an invoice is typeset with.
type FontSet struct {
	Base       Font
	Bold       Font
	Italic     Font
	BoldItalic Font
}

// DefaultFonts returns the engine's built-in Helvetica faces.
func DefaultFonts() FontSet {
	return FontSet{
		Base:       Font{Family: "Helvetica"},
		Bold:       Font{Family: "Helvetica", Style: "B"},
		Italic:     Font{Family: "Helvetica", Style: "I"},
		BoldItalic: Font{Family: "Helvetica", Style: "BI"},
	}
}

// Descriptor is a concrete, fully resolved text style.
type Descriptor struct {
	Font  Font
	Size  float64
	Align Alignment
}

// ConfigError reports a style parameter outside the closed vocabulary.
// It indicates a programming defect, not bad user input; callers must
// fail rather than fall back to a default face.
type ConfigError struct {
	Param string
	Value any
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("style: unrecognized %s: %v", e.Param, e.Value)
}

// Resolver maps style requests onto a font set.
type Resolver struct {
	fonts FontSet
}

// NewResolver returns a resolver over the given font set.
func NewResolver(fonts FontSet) *Resolver {
	return &Resolver{fonts: fonts}
}

// Resolve produces the descriptor for an alignment, emphasis and size.
// A non-positive size falls back to DefaultSize. The emphasis switch is
// exhaustive over the defined constants; anything else is a ConfigError.
func (r *Resolver) Resolve(align Alignment, emphasis Emphasis, size float64) (Descriptor, error) {
	if size <= 0 {
		size = DefaultSize
	}

	var f Font
	switch emphasis {
	case Base:
		f = r.fonts.Base
	case Bold:
		f = r.fonts.Bold
	case Italic:
		f = r.fonts.Italic
	case BoldItalic:
		f = r.fonts.BoldItalic
	default:
		return Descriptor{}, &ConfigError{Param: "emphasis", Value: emphasis}
	}

	return Descriptor{Font: f, Size: size, Align: align}, nil
}
