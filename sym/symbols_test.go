package sym

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/teranos/inhabit/typex"
)

func TestSymbolToCommandAndCommandToSymbolAreBidirectional(t *testing.T) {
	assert.Equal(t, len(SymbolToCommand), len(CommandToSymbol))
	for symbol, cmd := range SymbolToCommand {
		assert.Equal(t, symbol, CommandToSymbol[cmd], "command %q", cmd)
	}
}

func TestCategoryGlyphs(t *testing.T) {
	seen := make(map[string]typex.Category)
	for c := typex.CategoryOpaque; c <= typex.CategoryProtocol; c++ {
		g := ForCategory(c)
		assert.Equal(t, 1, utf8.RuneCountInString(g), "%s glyph is a single rune", c)
		prev, dup := seen[g]
		assert.False(t, dup, "%s and %s share glyph %s", c, prev, g)
		seen[g] = c
	}
	assert.Equal(t, "?", ForCategory(typex.Category(99)))
}
