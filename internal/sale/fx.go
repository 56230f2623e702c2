package sale

import (
	"github.com/vendahub/salesops/internal/sale/repository"
	"github.com/vendahub/salesops/internal/sale/service"
	"go.uber.org/fx"
)

var Module = fx.Module("sale.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
