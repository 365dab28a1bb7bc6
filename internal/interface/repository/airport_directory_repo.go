package repository

import (
	"context"
	"errors"
	"fmt"

	"flightlookup-service/internal/domain/entity"
	"flightlookup-service/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAirportDirectoryRepository implements the AirportDirectoryRepository interface
type GormAirportDirectoryRepository struct {
	db *gorm.DB
}

// NewGormAirportDirectoryRepository creates a new GORM airport directory repository
func NewGormAirportDirectoryRepository(db *gorm.DB) repository.AirportDirectoryRepository {
	return &GormAirportDirectoryRepository{
		db: db,
	}
}

// Airport GORM model for database mapping
type Airport struct {
	gorm.Model
	IATACode  string  `gorm:"column:iata_code;size:8;uniqueIndex"`
	Name      string  `gorm:"column:name"`
	Latitude  float64 `gorm:"column:latitude"`
	Longitude float64 `gorm:"column:longitude"`
}

// TableName overrides the default table name
func (Airport) TableName() string {
	return "m_airports"
}

// GetByIATA finds an airport by IATA code
func (r *GormAirportDirectoryRepository) GetByIATA(ctx context.Context, code string) (*entity.AirportInfo, error) {
	var airport Airport
	result := r.db.WithContext(ctx).Unscoped().Where("iata_code = ?", code).First(&airport)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", entity.ErrAirportNotFound, code)
		}
		return nil, result.Error
	}

	// Convert GORM model to domain entity
	return &entity.AirportInfo{
		IATA: airport.IATACode,
		Name: airport.Name,
		Lat:  airport.Latitude,
		Lng:  airport.Longitude,
	}, nil
}

// Save inserts an airport. An existing row for the same code is kept as is.
func (r *GormAirportDirectoryRepository) Save(ctx context.Context, airport *entity.AirportInfo) error {
	if airport.Synthetic {
		return nil
	}

	model := Airport{
		IATACode:  airport.IATA,
		Name:      airport.Name,
		Latitude:  airport.Lat,
		Longitude: airport.Lng,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "iata_code"}}, DoNothing: true}).
		Create(&model).Error
}

// Count returns the number of stored airports
func (r *GormAirportDirectoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&Airport{}).Count(&count).Error
	return count, err
}
