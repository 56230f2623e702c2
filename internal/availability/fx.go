package availability

import (
	"github.com/vendahub/salesops/internal/availability/repository"
	"github.com/vendahub/salesops/internal/availability/service"
	"go.uber.org/fx"
)

var Module = fx.Module("availability.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
