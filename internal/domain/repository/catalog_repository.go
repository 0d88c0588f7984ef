package repository

import (
	"context"

	"salon-booking/internal/domain/entity"
)

type CatalogRepository interface {
	FindAll(ctx context.Context) ([]entity.CatalogService, error)
	FindByName(ctx context.Context, name string) (*entity.CatalogService, error)
}
