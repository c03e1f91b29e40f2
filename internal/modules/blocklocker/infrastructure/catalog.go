package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/application/ports"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/domain"
	"gopkg.in/yaml.v3"
)

// catalogReloadDelay debounces bursts of writes from editors.
const catalogReloadDelay = 500 * time.Millisecond

// CatalogFile is the YAML layout of a block catalog file.
//
//	protectable:
//	  - chest
//	  - door
type CatalogFile struct {
	Protectable []string `yaml:"protectable"`
}

// LoadCatalogFile reads a block catalog from a YAML file.
func LoadCatalogFile(path string) (*domain.BlockCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var file CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(file.Protectable) == 0 {
		return nil, fmt.Errorf("catalog %s lists no protectable blocks", path)
	}

	return domain.NewBlockCatalog(file.Protectable), nil
}

// LiveCatalog is a BlockCatalog whose contents can be swapped while in use.
type LiveCatalog struct {
	current atomic.Pointer[domain.BlockCatalog]
	path    string
}

// NewLiveCatalog creates a LiveCatalog. With an empty path it serves the
// built-in catalog; otherwise it loads path.
func NewLiveCatalog(path string) (*LiveCatalog, error) {
	c := &LiveCatalog{path: path}
	if path == "" {
		c.current.Store(domain.DefaultBlockCatalog())
		return c, nil
	}

	catalog, err := LoadCatalogFile(path)
	if err != nil {
		return nil, err
	}
	c.current.Store(catalog)
	return c, nil
}

// IsProtectable reports whether blockKind can be locked.
func (c *LiveCatalog) IsProtectable(blockKind string) bool {
	return c.current.Load().IsProtectable(blockKind)
}

// Patterns returns the patterns currently in effect.
func (c *LiveCatalog) Patterns() []string {
	return c.current.Load().Patterns()
}

// Reload re-reads the catalog file. On failure the previous catalog stays in effect.
func (c *LiveCatalog) Reload() error {
	if c.path == "" {
		return nil
	}
	catalog, err := LoadCatalogFile(c.path)
	if err != nil {
		return err
	}
	c.current.Store(catalog)
	return nil
}

// Watch reloads the catalog whenever its file changes. Blocks until ctx is cancelled.
func (c *LiveCatalog) Watch(ctx context.Context) error {
	if c.path == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file rather than write it.
	if err := watcher.Add(filepath.Dir(c.path)); err != nil {
		return fmt.Errorf("failed to watch %q: %w", c.path, err)
	}

	target := filepath.Clean(c.path)
	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(catalogReloadDelay, func() {
				if err := c.Reload(); err != nil {
					slog.Error("failed to reload block catalog", "path", c.path, "error", err)
					return
				}
				slog.Info("reloaded block catalog", "path", c.path, "patterns", len(c.Patterns()))
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("block catalog watcher error", "error", err)
		}
	}
}

var _ ports.BlockCatalog = (*LiveCatalog)(nil)
