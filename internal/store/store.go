// Package store provides a persistent, schema-typed key-value store backed
// by SQLite. Keys are hierarchical string paths (namespace, section, key)
// and values are typed scalars.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var (
	// ErrNotFound is returned when a requested key does not exist.
	ErrNotFound = errors.New("key not found")
	// ErrUnknownKind is returned when a value carries an unsupported kind.
	ErrUnknownKind = errors.New("unknown value kind")
	// ErrInvalidSchema is returned when the store schema is malformed.
	ErrInvalidSchema = errors.New("invalid store schema")
	// ErrSchemaViolation is returned when a key path falls outside the schema.
	ErrSchemaViolation = errors.New("key path outside schema")
)

// pathSeparator joins key path segments into the stored key string.
const pathSeparator = "."

// Schema describes the hierarchical namespaces the store accepts: each
// top-level namespace maps to the sections allowed beneath it.
type Schema map[string][]string

// validate checks that the schema declares at least one namespace and that
// every namespace declares at least one section.
func (s Schema) validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: no namespaces declared", ErrInvalidSchema)
	}
	for ns, sections := range s {
		if ns == "" {
			return fmt.Errorf("%w: empty namespace name", ErrInvalidSchema)
		}
		if len(sections) == 0 {
			return fmt.Errorf("%w: namespace %q declares no sections", ErrInvalidSchema, ns)
		}
		for _, section := range sections {
			if section == "" {
				return fmt.Errorf("%w: namespace %q declares an empty section", ErrInvalidSchema, ns)
			}
		}
	}
	return nil
}

// allows reports whether the given key path falls inside the schema.
// A valid path has exactly three segments: namespace, section, key.
func (s Schema) allows(path []string) bool {
	if len(path) != 3 {
		return false
	}
	for _, segment := range path {
		if segment == "" {
			return false
		}
	}
	sections, ok := s[path[0]]
	if !ok {
		return false
	}
	for _, section := range sections {
		if section == path[1] {
			return true
		}
	}
	return false
}

// Entry pairs a key path with the value to store under it.
type Entry struct {
	Path  []string
	Value Value
}

// Reader defines read operations on the key-value store.
type Reader interface {
	// Get retrieves the value stored under the given key path.
	Get(path ...string) (Value, error)
}

// Writer defines write operations on the key-value store.
type Writer interface {
	// Set stores a value under the given key path.
	Set(value Value, path ...string) error
	// SetMany stores all entries in a single transaction.
	SetMany(entries []Entry) error
}

// Interface defines the complete key-value store contract. It is satisfied
// by Store and can be used for dependency injection in tests.
type Interface interface {
	Reader
	Writer
}

// Compile-time check that Store implements Interface.
var _ Interface = (*Store)(nil)

// record is the GORM model for a single stored entry.
type record struct {
	Path      string `gorm:"primaryKey;size:255"`
	Kind      string `gorm:"size:20;not null"`
	Raw       string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName overrides the GORM table name.
func (record) TableName() string {
	return "entries"
}

// Store persists typed values under hierarchical key paths in SQLite.
type Store struct {
	db     *gorm.DB
	schema Schema
}

// New opens (or creates) a store at the given file path with the given
// schema. The parent directory is created if missing.
func New(path string, schema Schema) (*Store, error) {
	if err := schema.validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	logLevel := logger.Silent
	if os.Getenv("TRAFFICMON_DEBUG") == "1" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate store: %w", err)
	}

	return &Store{db: db, schema: schema}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access store connection: %w", err)
	}
	return sqlDB.Close()
}

// key validates a path against the schema and joins it into the stored key.
func (s *Store) key(path []string) (string, error) {
	if !s.schema.allows(path) {
		return "", fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(path, pathSeparator))
	}
	return strings.Join(path, pathSeparator), nil
}

// Get retrieves the value stored under the given key path. ErrNotFound is
// returned when the key has never been written.
func (s *Store) Get(path ...string) (Value, error) {
	key, err := s.key(path)
	if err != nil {
		return Value{}, err
	}

	var rec record
	if err := s.db.First(&rec, "path = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Value{}, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return Value{}, fmt.Errorf("failed to read key %s: %w", key, err)
	}

	return decodeValue(Kind(rec.Kind), rec.Raw)
}

// Set stores a value under the given key path, replacing any previous value.
func (s *Store) Set(value Value, path ...string) error {
	return s.SetMany([]Entry{{Path: path, Value: value}})
}

// SetMany stores all entries in a single transaction so related keys are
// never observable half-updated.
func (s *Store) SetMany(entries []Entry) error {
	records := make([]record, 0, len(entries))
	for _, entry := range entries {
		key, err := s.key(entry.Path)
		if err != nil {
			return err
		}
		raw, err := entry.Value.encode()
		if err != nil {
			return fmt.Errorf("failed to encode value for key %s: %w", key, err)
		}
		records = append(records, record{Path: key, Kind: string(entry.Value.Kind), Raw: raw})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range records {
			result := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "path"}},
				DoUpdates: clause.AssignmentColumns([]string{"kind", "raw", "updated_at"}),
			}).Create(&records[i])
			if result.Error != nil {
				return result.Error
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write store entries: %w", err)
	}
	return nil
}
