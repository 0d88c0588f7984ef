package converter

import (
	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/domain/entity"
)

func CatalogServiceToResponse(service *entity.CatalogService) dto.ServiceResponse {
	return dto.ServiceResponse{
		Name:            service.Name,
		Description:     service.Description,
		Price:           service.Price,
		DurationMinutes: service.DurationMinutes,
	}
}

func CatalogServicesToResponses(services []entity.CatalogService) []dto.ServiceResponse {
	responses := make([]dto.ServiceResponse, len(services))
	for i := range services {
		responses[i] = CatalogServiceToResponse(&services[i])
	}
	return responses
}
