package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/odc-estimate/internal/domain/repository"
	"github.com/odc-estimate/internal/repository/postgres"
	"go.uber.org/zap"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewRouteRepositoryForTest creates a route repository with test database and logger
func NewRouteRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.RouteRepository {
	return postgres.NewRouteRepository(NewDBForTest(db, logger))
}

// NewEnquiryRepositoryForTest creates an enquiry repository with test database and logger
func NewEnquiryRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.EnquiryRepository {
	return postgres.NewEnquiryRepository(NewDBForTest(db, logger))
}
