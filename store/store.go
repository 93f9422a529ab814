package store

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/zeebo/blake3"
	"gorm.io/gorm"

	"github.com/TomShaw333/RustCalculatorSuite/model"
)

// Store is the calculation history database.
type Store struct {
	db *gorm.DB
}

// Open opens the sqlite database at path, creating and migrating it as
// needed.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.CalcEntry{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

// Key derives the cache key for a resolved token sequence.
func Key(tokens []string) string {
	h := blake3.New()
	h.WriteString(fmt.Sprintf("e:%s\n", strings.Join(tokens, " ")))
	return hex.EncodeToString(h.Sum(nil))
}

// Save records an entry unless its key is already present.
func (s *Store) Save(entry *model.CalcEntry) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&model.CalcEntry{}).Select("count(1)").
			Where("params_hash = ?", entry.ParamsHash).Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return tx.Create(entry).Error
	})
}

// Find returns the newest entry for key, or os.ErrNotExist when the key
// has never been saved or its entry was purged.
func (s *Store) Find(key string) (*model.CalcEntry, error) {
	var rows []*model.CalcEntry
	err := s.db.Where("params_hash = ?", key).
		Order("created_at desc").Limit(1).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, os.ErrNotExist
	}
	return rows[0], nil
}

// Touch refreshes the last access time for key.
func (s *Store) Touch(key string) error {
	return s.db.Unscoped().Model(&model.CalcEntry{}).
		Where("params_hash = ?", key).
		Update("last_access", time.Now().Unix()).Error
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]*model.CalcEntry, error) {
	var rows []*model.CalcEntry
	err := s.db.Order("created_at desc").Limit(limit).Find(&rows).Error
	return rows, err
}

// Expired returns up to limit entries whose retention period has lapsed.
func (s *Store) Expired(limit int) ([]*model.CalcEntry, error) {
	var rows []*model.CalcEntry
	err := s.db.Model(&model.CalcEntry{}).
		Where("last_access + expired_duration < ?", time.Now().Unix()).
		Limit(limit).Find(&rows).Error
	return rows, err
}

// Purge soft deletes the entries with the given ids.
func (s *Store) Purge(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.Delete(&model.CalcEntry{}, ids).Error
}

// Clear soft deletes every entry.
func (s *Store) Clear() error {
	return s.db.Where("1 = 1").Delete(&model.CalcEntry{}).Error
}
