package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultProtectablePatterns are the block identifier fragments that may be locked.
// Ender chests and trapped chests are covered by "chest".
var DefaultProtectablePatterns = []string{
	"chest",
	"door",
	"furnace",
	"brewing_stand",
	"hopper",
	"dropper",
	"dispenser",
	"barrel",
	"shulker_box",
	"anvil",
	"enchanting_table",
	"beacon",
}

// BlockCatalog decides which block kinds can be locked.
type BlockCatalog struct {
	patterns []string
}

// NewBlockCatalog creates a catalog matching any identifier containing one of patterns.
// Patterns are matched case-insensitively; blank entries are ignored.
func NewBlockCatalog(patterns []string) *BlockCatalog {
	c := &BlockCatalog{patterns: make([]string, 0, len(patterns))}
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			c.patterns = append(c.patterns, p)
		}
	}
	return c
}

// DefaultBlockCatalog returns the built-in catalog.
func DefaultBlockCatalog() *BlockCatalog {
	return NewBlockCatalog(DefaultProtectablePatterns)
}

// IsProtectable reports whether a block with the given identifier can be locked.
func (c *BlockCatalog) IsProtectable(blockKind string) bool {
	if blockKind == "" {
		return false
	}
	kind := strings.ToLower(blockKind)
	for _, p := range c.patterns {
		if strings.Contains(kind, p) {
			return true
		}
	}
	return false
}

// Patterns returns the catalog's patterns.
func (c *BlockCatalog) Patterns() []string {
	out := make([]string, len(c.patterns))
	copy(out, c.patterns)
	return out
}

// BlockDisplayName turns an identifier like "minecraft:trapped_chest" into "Trapped Chest".
func BlockDisplayName(blockKind string) string {
	if blockKind == "" {
		return "Unknown"
	}

	name := blockKind
	if idx := strings.Index(name, ":"); idx >= 0 {
		name = name[idx+1:]
	}

	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	if len(words) == 0 {
		return "Unknown"
	}
	return strings.Join(words, " ")
}
