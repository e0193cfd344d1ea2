package data

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/devrajsawant/dev-scrum/internal/conf"
	"github.com/devrajsawant/dev-scrum/internal/model"
)

// Data holds the database handle shared by repositories and services.
type Data struct {
	DB *gorm.DB
}

// NewData connects to Postgres, migrates the schema and returns the handle
// together with a cleanup function.
func NewData(cfg *conf.Config) (*Data, func(), error) {
	db, err := gorm.Open(postgres.Open(cfg.Data.DatabaseSource), &gorm.Config{
		// Surface unique-index violations as gorm.ErrDuplicatedKey so the
		// service layer can react to them.
		TranslateError: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %v", err)
	}

	if err := Migrate(db); err != nil {
		return nil, nil, err
	}

	d := &Data{DB: db}
	cleanup := func() {
		log.Println("closing database handle")
		if sqlDB, err := d.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
	return d, cleanup, nil
}

// Migrate creates or updates the schema for all entities. Tests call it
// directly against an in-memory handle.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Sprint{},
		&model.Issue{},
	); err != nil {
		return fmt.Errorf("schema migration failed: %v", err)
	}
	return nil
}
