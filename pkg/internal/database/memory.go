package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewMemoryGorm opens a private in-memory sqlite database with foreign keys
// enforced, migrates it and installs it as C. Each name is a separate database.
func NewMemoryGorm(name string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	source, err := gorm.Open(sqlite.Open(dsn), Config())
	if err != nil {
		return nil, err
	}

	// One connection, otherwise sqlite reports table locks on the shared cache.
	raw, err := source.DB()
	if err != nil {
		return nil, err
	}
	raw.SetMaxOpenConns(1)

	if err := RunMigration(source); err != nil {
		return nil, err
	}

	C = source
	return source, nil
}
