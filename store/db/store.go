package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/govm-net/counter/core"
	"github.com/govm-net/counter/store"
	"github.com/govm-net/counter/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultDBPath = "./counter.db"
)

// DBEntry represents one key-value pair of contract state
type DBEntry struct {
	Key       string    `gorm:"column:entry_key;primaryKey;size:255"`
	Value     []byte    `gorm:"column:entry_value;type:blob;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for DBEntry
func (DBEntry) TableName() string {
	return "kv_entries"
}

// DBEvent represents the acknowledgement of a committed contract call
type DBEvent struct {
	gorm.Model
	TxID       string `gorm:"column:tx_id;not null;index;size:64"`
	Method     string `gorm:"column:method;not null;index;size:64"`
	Attributes []byte `gorm:"column:attributes;type:blob;not null"` // JSON encoded attributes
}

// TableName specifies the table name for DBEvent
func (DBEvent) TableName() string {
	return "events"
}

// Store implements types.TxStore on SQLite through GORM
type Store struct {
	view
}

func init() {
	store.Register(store.DBStoreType, NewStore)
}

// NewStore opens (creating if needed) the SQLite database named by the "db_path" param
func NewStore(params map[string]any) (types.TxStore, error) {
	return Open(store.DBPath(params, defaultDBPath))
}

// Open opens the SQLite database at dbPath and migrates the schema
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&DBEntry{}, &DBEvent{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{view{db: db}}, nil
}

// Update runs fn inside a database transaction
func (s *Store) Update(fn func(tx types.Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&view{db: tx})
	})
}

// Events returns the recorded events, oldest first
func (s *Store) Events() ([]DBEvent, error) {
	var events []DBEvent
	if err := s.db.Order("id").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// view serves reads and writes against either the database or an open transaction
type view struct {
	db *gorm.DB
}

func (v *view) Load(key string) ([]byte, error) {
	var entry DBEntry
	result := v.db.Where("entry_key = ?", key).First(&entry)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get entry: %w", result.Error)
	}
	return entry.Value, nil
}

func (v *view) Save(key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	entry := &DBEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	result := v.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"entry_value", "updated_at"}),
	}).Create(entry)
	if result.Error != nil {
		return fmt.Errorf("failed to save entry: %w", result.Error)
	}
	return nil
}

// RecordEvent implements types.EventRecorder
func (v *view) RecordEvent(txID, method string, attrs []core.Attribute) error {
	data, err := json.Marshal(attrs)
	if err != nil {
		return fmt.Errorf("failed to marshal event attributes: %w", err)
	}

	event := &DBEvent{
		TxID:       txID,
		Method:     method,
		Attributes: data,
	}
	if err := v.db.Create(event).Error; err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}
	return nil
}
