package repository

import (
	"context"

	"personDirectory/models"
)

// PersonRepository defines operations on Person records.
type PersonRepositoryI interface {
	CreateTable(ctx context.Context) error
	DropTable(ctx context.Context) error
	InsertOne(ctx context.Context, p models.Person) error
	InsertMany(ctx context.Context, people []models.Person) error
	FetchAll(ctx context.Context) ([]models.Person, error)
	FindByLastNameExact(ctx context.Context, lastname string) (*models.Person, error)
	FindByBiographyContains(ctx context.Context, substr string) (*models.Person, error)
	FindByLastNameContains(ctx context.Context, substr string) ([]models.PersonName, error)
}
