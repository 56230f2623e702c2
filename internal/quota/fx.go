package quota

import (
	"github.com/vendahub/salesops/internal/quota/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("quota.repository",
	fx.Provide(repository.Provide),
)
