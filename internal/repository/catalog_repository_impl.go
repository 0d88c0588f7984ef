package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"salon-booking/config"
	"salon-booking/internal/domain/entity"
	domainRepo "salon-booking/internal/domain/repository"

	"github.com/shopspring/decimal"
)

type catalogRepository struct {
	services []entity.CatalogService
}

// NewCatalogRepository builds the service catalog from configuration. A blank or
// repeated name, or a price that is not a non-negative decimal, fails construction.
func NewCatalogRepository(services []config.ServiceConfig) (domainRepo.CatalogRepository, error) {
	catalog := make([]entity.CatalogService, 0, len(services))
	seen := make(map[string]bool, len(services))
	for _, svc := range services {
		name := strings.TrimSpace(svc.Name)
		if name == "" {
			return nil, errors.New("catalog service without a name")
		}
		if seen[name] {
			return nil, fmt.Errorf("catalog service %q listed twice", name)
		}
		seen[name] = true

		price, err := decimal.NewFromString(strings.TrimSpace(svc.Price))
		if err != nil {
			return nil, fmt.Errorf("catalog service %q: invalid price %q: %w", name, svc.Price, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("catalog service %q: negative price %s", name, price)
		}

		catalog = append(catalog, entity.CatalogService{
			Name:            name,
			Description:     svc.Description,
			Price:           price,
			DurationMinutes: svc.DurationMinutes,
		})
	}
	return &catalogRepository{services: catalog}, nil
}

func (r *catalogRepository) FindAll(ctx context.Context) ([]entity.CatalogService, error) {
	services := make([]entity.CatalogService, len(r.services))
	copy(services, r.services)
	return services, nil
}

func (r *catalogRepository) FindByName(ctx context.Context, name string) (*entity.CatalogService, error) {
	for i := range r.services {
		if r.services[i].Name == name {
			svc := r.services[i]
			return &svc, nil
		}
	}
	return nil, nil
}
