// Package style holds the theme-color enum and the styled-text value the
// canvas paints with. Colors are theme variants rather than raw terminal
// colors so a host terminal translator (out of scope, spec §6) can pick
// concrete escape sequences per variant.
package style

// ThemeColor names a semantic color a theme maps to a concrete terminal
// color. The zero value, ColorDefault, means "no color set" (terminal
// default / reset).
type ThemeColor int

const (
	ColorDefault ThemeColor = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorGray
)

// AttributeKind names which of the three style channels an Attribute
// belongs to (spec §3: "{fg-color, bg-color, bold}"). The canvas keeps one
// independent restore stack per kind when it flattens overlapping regions.
type AttributeKind int

const (
	AttrFg AttributeKind = iota
	AttrBg
	AttrBold

	// KindCount is the number of distinct attribute kinds; used to size
	// per-kind restore stacks.
	KindCount = int(AttrBold) + 1
)

// Attribute is a single style channel value: either a theme-color variant
// (fg/bg) or a boolean (bold) — never a raw terminal color, per spec §3.
type Attribute struct {
	Kind  AttributeKind
	Color ThemeColor
	Bold  bool
}

// Fg builds a foreground-color attribute.
func Fg(c ThemeColor) Attribute { return Attribute{Kind: AttrFg, Color: c} }

// Bg builds a background-color attribute.
func Bg(c ThemeColor) Attribute { return Attribute{Kind: AttrBg, Color: c} }

// BoldAttr builds a bold on/off attribute.
func BoldAttr(on bool) Attribute { return Attribute{Kind: AttrBold, Bold: on} }

// StyledText is a text blob plus the attributes attached to it.
type StyledText struct {
	text  string
	attrs []Attribute
}

// New creates a StyledText with no attributes.
func New(text string) StyledText {
	return StyledText{text: text}
}

// With returns a copy of t with attr appended.
func (t StyledText) With(attr Attribute) StyledText {
	next := make([]Attribute, len(t.attrs), len(t.attrs)+1)
	copy(next, t.attrs)
	next = append(next, attr)
	return StyledText{text: t.text, attrs: next}
}

// Text returns the raw text content.
func (t StyledText) Text() string { return t.text }

// Attributes returns the attached attribute list.
func (t StyledText) Attributes() []Attribute { return t.attrs }

// Len returns the byte length of the text content.
func (t StyledText) Len() int { return len(t.text) }
