// Package sym defines the glyphs inhabit prints for commands and type
// categories. They are stable across CLI output and documentation.
package sym

import "github.com/teranos/inhabit/typex"

// Command glyphs.
const (
	Expand   = "⋈" // expand a type into its instances
	Params   = "⨳" // parameter table preview
	Catalog  = "≡" // primitive value catalog
	Packs    = "⌬" // handler packs
	Classify = "⊨" // structural category of a type
)

// Category glyphs.
const (
	Opaque    = "▣"
	Special   = "✦"
	Sum       = "∪"
	Product   = "×"
	Primitive = "∙"
	Callable  = "ƒ"
	TypeVar   = "τ"
	Protocol  = "⟐"
)

var categoryGlyphs = map[typex.Category]string{
	typex.CategoryOpaque:    Opaque,
	typex.CategorySpecial:   Special,
	typex.CategorySum:       Sum,
	typex.CategoryProduct:   Product,
	typex.CategoryPrimitive: Primitive,
	typex.CategoryCallable:  Callable,
	typex.CategoryTypeVar:   TypeVar,
	typex.CategoryProtocol:  Protocol,
}

// ForCategory returns the glyph of c, or "?" for an unknown category.
func ForCategory(c typex.Category) string {
	if g, ok := categoryGlyphs[c]; ok {
		return g
	}
	return "?"
}

// SymbolToCommand maps command glyphs to their command names.
var SymbolToCommand = map[string]string{
	Expand:   "expand",
	Params:   "params",
	Catalog:  "catalog",
	Packs:    "packs",
	Classify: "classify",
}

// CommandToSymbol maps command names to their glyphs.
var CommandToSymbol = map[string]string{
	"expand":   Expand,
	"params":   Params,
	"catalog":  Catalog,
	"packs":    Packs,
	"classify": Classify,
}
