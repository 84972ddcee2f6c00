// This file implements the SQLite snapshot data source, backed by GORM and
// the pure-Go SQLite driver, plus the export path that writes a validated
// catalog into a snapshot.
package repo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/politely-failed/internal/domain"
)

// OpenSQLite opens (or creates) a SQLite database, applies PRAGMAs, and
// installs the OpenTelemetry tracing plugin.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := db.Use(tracing.NewPlugin()); err != nil {
		closeDB(db)
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// A snapshot is read once per load; a single connection is enough.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxIdleTime(time.Minute)
	}

	return db, nil
}

// AutoMigrate creates the snapshot tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.CatalogMeta{},
		&domain.MessageSet{},
		&domain.MessageRow{},
	)
}

// SaveSnapshot replaces the snapshot contents of db with mdb in a single
// transaction. Sets are written for every declared Category × Tone pair so
// empty lists survive the round trip.
func SaveSnapshot(ctx context.Context, db *gorm.DB, mdb *domain.MessageDatabase) error {
	if err := AutoMigrate(db.WithContext(ctx)); err != nil {
		return err
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&domain.MessageRow{}, &domain.MessageSet{}, &domain.CatalogMeta{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		if err := tx.Create(&domain.CatalogMeta{Key: domain.MetaKeyVersion, Value: mdb.Version}).Error; err != nil {
			return err
		}

		var rows []domain.MessageRow
		for _, c := range domain.Categories() {
			for _, t := range domain.Tones() {
				set := domain.MessageSet{Category: string(c), Tone: string(t)}
				if err := tx.Create(&set).Error; err != nil {
					return err
				}
				msgs, _ := mdb.Messages(c, t)
				for i, m := range msgs {
					rows = append(rows, domain.MessageRow{
						Category: string(c),
						Tone:     string(t),
						Position: i,
						Body:     m,
					})
				}
			}
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 200).Error
	})
}

// sqliteSource reads a snapshot written by SaveSnapshot and assembles it into
// the same generic document shape a JSON file decodes to.
type sqliteSource struct {
	path string
}

func (s *sqliteSource) Location() string { return s.path }

func (s *sqliteSource) ModTime() (time.Time, error) { return modTime(s.path) }

func (s *sqliteSource) Read(ctx context.Context) (any, error) {
	// Never let the driver create an empty database in place of a missing one.
	abs, err := resolvePath(s.path)
	if err != nil {
		return nil, err
	}
	db, err := OpenSQLite(abs)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", abs, err)
	}
	defer closeDB(db)
	db = db.WithContext(ctx)

	var metas []domain.CatalogMeta
	if err := db.Find(&metas).Error; err != nil {
		return nil, fmt.Errorf("read catalog_meta: %w", err)
	}
	var sets []domain.MessageSet
	if err := db.Find(&sets).Error; err != nil {
		return nil, fmt.Errorf("read message_sets: %w", err)
	}
	var rows []domain.MessageRow
	if err := db.Order("category ASC, tone ASC, position ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("read messages: %w", err)
	}

	categories := map[string]any{}
	list := func(category, tone string) map[string]any {
		tones, ok := categories[category].(map[string]any)
		if !ok {
			tones = map[string]any{}
			categories[category] = tones
		}
		if _, ok := tones[tone]; !ok {
			tones[tone] = []any{}
		}
		return tones
	}
	for _, set := range sets {
		list(set.Category, set.Tone)
	}
	for _, r := range rows {
		tones := list(r.Category, r.Tone)
		tones[r.Tone] = append(tones[r.Tone].([]any), r.Body)
	}

	doc := map[string]any{"categories": categories}
	for _, m := range metas {
		if m.Key == domain.MetaKeyVersion {
			doc["version"] = m.Value
		}
	}
	return doc, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
