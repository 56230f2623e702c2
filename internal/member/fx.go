package member

import (
	"github.com/vendahub/salesops/internal/member/repository"
	"github.com/vendahub/salesops/internal/member/service"
	"go.uber.org/fx"
)

var Module = fx.Module("member.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
