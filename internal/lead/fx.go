package lead

import (
	"github.com/vendahub/salesops/internal/lead/repository"
	"github.com/vendahub/salesops/internal/lead/service"
	"go.uber.org/fx"
)

var Module = fx.Module("lead",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
