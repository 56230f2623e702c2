package appointment

import (
	"github.com/vendahub/salesops/internal/appointment/repository"
	"github.com/vendahub/salesops/internal/appointment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("appointment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
