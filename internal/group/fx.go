package group

import (
	"github.com/vendahub/salesops/internal/group/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("group.repository",
	fx.Provide(repository.Provide),
)
