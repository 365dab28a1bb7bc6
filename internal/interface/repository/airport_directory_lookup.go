package repository

import (
	"context"
	"errors"

	"flightlookup-service/internal/domain/entity"
	"flightlookup-service/internal/domain/repository"
	"flightlookup-service/pkg/logger"
)

// DirectoryLookupService answers airport lookups from the airport directory and
// falls through to the wrapped service on a miss, writing the answer back.
// Flight lookups pass straight through.
type DirectoryLookupService struct {
	repository.LookupService
	directory repository.AirportDirectoryRepository
	logger    logger.Logger
}

// NewDirectoryLookupService wraps next with the airport directory
func NewDirectoryLookupService(next repository.LookupService, directory repository.AirportDirectoryRepository, logger logger.Logger) repository.LookupService {
	return &DirectoryLookupService{
		LookupService: next,
		directory:     directory,
		logger:        logger,
	}
}

// LookupAirport checks the directory first. Directory errors other than a miss are
// logged and the wrapped service is asked instead.
func (s *DirectoryLookupService) LookupAirport(ctx context.Context, iata string) (*entity.AirportInfo, error) {
	airport, err := s.directory.GetByIATA(ctx, iata)
	if err == nil {
		return airport, nil
	}
	if !errors.Is(err, entity.ErrAirportNotFound) {
		s.logger.Warn("Airport directory read failed", "iata", iata, "error", err)
	}

	airport, err = s.LookupService.LookupAirport(ctx, iata)
	if err != nil {
		return nil, err
	}

	if err := s.directory.Save(ctx, airport); err != nil {
		s.logger.Warn("Failed to store airport in directory", "iata", iata, "error", err)
	}
	return airport, nil
}
