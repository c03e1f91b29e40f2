package infrastructure

import (
	"bytes"
	"cmp"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/application/ports"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/domain"
)

// DefaultDataFile is where protections are stored unless configured otherwise.
const DefaultDataFile = "data/protected_blocks.json"

//go:embed schema/protections.schema.json
var snapshotSchemaSource string

var snapshotSchema = jsonschema.MustCompileString("protections.schema.json", snapshotSchemaSource)

// protectionRecord is the persisted form of a protection.
// Field names are shared with files written by earlier releases and must not change.
type protectionRecord struct {
	WorldName      string      `json:"worldName"`
	DimensionID    int         `json:"dimensionId"`
	X              int         `json:"x"`
	Y              int         `json:"y"`
	Z              int         `json:"z"`
	OwnerUUID      uuid.UUID   `json:"ownerUuid"`
	OwnerName      string      `json:"ownerName"`
	CreatedAt      int64       `json:"createdAt"` // milliseconds since epoch
	TrustedPlayers []uuid.UUID `json:"trustedPlayers"`
	AllowRedstone  bool        `json:"allowRedstone"`
	AllowHoppers   bool        `json:"allowHoppers"`
}

func toRecord(p *domain.Protection) protectionRecord {
	loc := p.Location()
	flags := p.Flags()
	return protectionRecord{
		WorldName:      loc.World,
		DimensionID:    loc.Dimension,
		X:              loc.X,
		Y:              loc.Y,
		Z:              loc.Z,
		OwnerUUID:      p.Owner(),
		OwnerName:      p.OwnerName(),
		CreatedAt:      p.CreatedAt().UnixMilli(),
		TrustedPlayers: p.Trusted(),
		AllowRedstone:  flags.AllowRedstone,
		AllowHoppers:   flags.AllowHoppers,
	}
}

func (r protectionRecord) toProtection() *domain.Protection {
	return domain.RestoreProtection(
		domain.NewLocation(r.WorldName, r.DimensionID, r.X, r.Y, r.Z),
		r.OwnerUUID,
		r.OwnerName,
		time.UnixMilli(r.CreatedAt),
		r.TrustedPlayers,
		domain.Flags{AllowRedstone: r.AllowRedstone, AllowHoppers: r.AllowHoppers},
	)
}

// FileStore persists protections as a pretty-printed JSON array in a single file.
// Each save overwrites the whole file through a temporary file and a rename.
type FileStore struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewFileStore creates a FileStore for path.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultDataFile
	}
	return &FileStore{path: path, now: time.Now}
}

// Path returns the snapshot file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the snapshot. A missing file is not an error. A file that cannot
// be decoded is moved aside so the next save does not destroy it.
func (s *FileStore) Load() ([]*domain.Protection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Info("no existing protection data found, starting fresh", "path", s.path)
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrPersistence, s.path, err)
	}

	protections, err := DecodeSnapshot(data)
	if err != nil {
		s.quarantine()
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrPersistence, s.path, err)
	}
	return protections, nil
}

// quarantine renames the current file to <path>.corrupt-<unix-ms>.
func (s *FileStore) quarantine() {
	target := s.path + ".corrupt-" + strconv.FormatInt(s.now().UnixMilli(), 10)
	if err := os.Rename(s.path, target); err != nil {
		slog.Warn("failed to move aside unreadable protection data", "path", s.path, "error", err)
		return
	}
	slog.Error("moved aside unreadable protection data", "path", s.path, "moved_to", target)
}

// Save overwrites the snapshot with protections.
func (s *FileStore) Save(protections []*domain.Protection) error {
	data, err := EncodeSnapshot(protections)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", domain.ErrPersistence, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create data directory: %w", domain.ErrPersistence, err)
		}
	}

	tmp := s.path + ".tmp"
	if err := writeSynced(tmp, data); err != nil {
		_ = os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("%w: write temp file: %w", domain.ErrPersistence, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("%w: rename temp file: %w", domain.ErrPersistence, err)
	}
	return nil
}

// writeSynced writes data to path and syncs it to disk.
func writeSynced(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// EncodeSnapshot renders protections in the persisted format, oldest first.
func EncodeSnapshot(protections []*domain.Protection) ([]byte, error) {
	records := make([]protectionRecord, 0, len(protections))
	for _, p := range protections {
		records = append(records, toRecord(p))
	}
	slices.SortFunc(records, func(a, b protectionRecord) int {
		if c := cmp.Compare(a.CreatedAt, b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(recordKey(a), recordKey(b))
	})
	return json.MarshalIndent(records, "", "  ")
}

// ValidateSnapshot checks data against the snapshot schema without decoding records.
func ValidateSnapshot(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	var doc any
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return err
	}
	return snapshotSchema.Validate(doc)
}

// DecodeSnapshot parses and validates a snapshot. Empty input and a JSON
// null both decode to no protections.
func DecodeSnapshot(data []byte) ([]*domain.Protection, error) {
	if err := ValidateSnapshot(data); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var records []protectionRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, err
	}

	protections := make([]*domain.Protection, 0, len(records))
	for _, r := range records {
		protections = append(protections, r.toProtection())
	}
	return protections, nil
}

func recordKey(r protectionRecord) domain.LocationKey {
	return domain.NewLocation(r.WorldName, r.DimensionID, r.X, r.Y, r.Z).Key()
}

var _ ports.SnapshotStore = (*FileStore)(nil)
