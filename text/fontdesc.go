package text

import "strings"

// FontWeight is the weight of a font, from thin to black.
type FontWeight uint8

const (
	WeightNone FontWeight = iota
	WeightThin
	WeightUltraLight
	WeightLight
	WeightBook
	WeightNormal
	WeightMedium
	WeightSemiBold
	WeightBold
	WeightUltraBold
	WeightBlack
)

var weightNames = [...]string{
	WeightNone:       "none",
	WeightThin:       "thin",
	WeightUltraLight: "ultraLight",
	WeightLight:      "light",
	WeightBook:       "book",
	WeightNormal:     "normal",
	WeightMedium:     "medium",
	WeightSemiBold:   "semiBold",
	WeightBold:       "bold",
	WeightUltraBold:  "ultraBold",
	WeightBlack:      "black",
}

func (w FontWeight) String() string {
	if int(w) < len(weightNames) {
		return weightNames[w]
	}
	return unknownStr
}

// ParseFontWeight parses a weight name such as "bold", ignoring case.
func ParseFontWeight(s string) (FontWeight, bool) {
	for i, name := range weightNames {
		if strings.EqualFold(name, s) {
			return FontWeight(i), true
		}
	}
	return WeightNone, false
}

// FontWidth is the width (stretch) of a font.
type FontWidth uint8

const (
	WidthNone FontWidth = iota
	WidthCondensed
	WidthNormal
	WidthExpanded
)

var widthNames = [...]string{
	WidthNone:      "none",
	WidthCondensed: "condensed",
	WidthNormal:    "normal",
	WidthExpanded:  "expanded",
}

func (w FontWidth) String() string {
	if int(w) < len(widthNames) {
		return widthNames[w]
	}
	return unknownStr
}

// ParseFontWidth parses a width name, ignoring case.
func ParseFontWidth(s string) (FontWidth, bool) {
	for i, name := range widthNames {
		if strings.EqualFold(name, s) {
			return FontWidth(i), true
		}
	}
	return WidthNone, false
}

// FontSlant is the slant of a font.
type FontSlant uint8

const (
	SlantNone FontSlant = iota
	SlantNormal
	SlantItalic
	SlantOblique
)

var slantNames = [...]string{
	SlantNone:    "none",
	SlantNormal:  "normal",
	SlantItalic:  "italic",
	SlantOblique: "oblique",
}

func (s FontSlant) String() string {
	if int(s) < len(slantNames) {
		return slantNames[s]
	}
	return unknownStr
}

// ParseFontSlant parses a slant name, ignoring case.
func ParseFontSlant(s string) (FontSlant, bool) {
	for i, name := range slantNames {
		if strings.EqualFold(name, s) {
			return FontSlant(i), true
		}
	}
	return SlantNone, false
}

// FontDescription describes a requested font.
// Zero fields mean "use the default".
type FontDescription struct {
	Family string
	Weight FontWeight
	Width  FontWidth
	Slant  FontSlant
}

// Merge returns d with its unset fields taken from def.
func (d FontDescription) Merge(def FontDescription) FontDescription {
	if d.Family == "" {
		d.Family = def.Family
	}
	if d.Weight == WeightNone {
		d.Weight = def.Weight
	}
	if d.Width == WidthNone {
		d.Width = def.Width
	}
	if d.Slant == SlantNone {
		d.Slant = def.Slant
	}
	return d
}

// normalized fills unset fields with regular values.
func (d FontDescription) normalized() FontDescription {
	return d.Merge(FontDescription{Weight: WeightNormal, Width: WidthNormal, Slant: SlantNormal})
}

// FontDescriptionRun requests a font for a range of characters.
// Only the fields flagged as defined override the default description.
type FontDescriptionRun struct {
	CharacterRun
	Description FontDescription

	// PointSize is the requested size in points.
	PointSize float32

	FamilyDefined bool
	WeightDefined bool
	WidthDefined  bool
	SlantDefined  bool
	SizeDefined   bool
}

// apply overrides the defined fields of desc and size.
func (r *FontDescriptionRun) apply(desc *FontDescription, size *float32) {
	if r.FamilyDefined {
		desc.Family = r.Description.Family
	}
	if r.WeightDefined {
		desc.Weight = r.Description.Weight
	}
	if r.WidthDefined {
		desc.Width = r.Description.Width
	}
	if r.SlantDefined {
		desc.Slant = r.Description.Slant
	}
	if r.SizeDefined {
		*size = r.PointSize
	}
}
