package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/vendahub/salesops/internal/clock"
	"github.com/vendahub/salesops/internal/config"
	"github.com/vendahub/salesops/internal/migration"
	"github.com/vendahub/salesops/internal/observability/metrics"
	"github.com/vendahub/salesops/internal/server"
	"github.com/vendahub/salesops/pkg/db"
	"github.com/vendahub/salesops/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		metrics.Module,

		// Schema and seed data
		migration.Module,

		// HTTP surface; pulls in every domain module
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
