package ports

// BlockCatalog decides whether a block kind can be locked.
// The host's block metadata or the module's configurable catalog implement it.
type BlockCatalog interface {
	IsProtectable(blockKind string) bool
}
