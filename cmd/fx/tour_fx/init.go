package tour_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tourway/internal/repositories"
	"tourway/internal/services"
	"tourway/pkg/utils"
)

var Module = fx.Provide(provideTourRepo, provideTourService)

func provideTourRepo(db *gorm.DB) repositories.TourRepository {
	return repositories.NewTourRepository(db)
}

func provideTourService(
	tourRepo repositories.TourRepository,
	generator utils.ContentGeneratorInterface,
	imageService services.ImageSearchServiceInterface,
) services.TourServiceInterface {
	return services.NewTourService(tourRepo, generator, imageService)
}
