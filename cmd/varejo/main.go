package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/internal/clock"
	"github.com/smallbiznis/varejo/internal/config"
	"github.com/smallbiznis/varejo/internal/migration"
	"github.com/smallbiznis/varejo/internal/observability"
	"github.com/smallbiznis/varejo/internal/server"
	"github.com/smallbiznis/varejo/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		// schema must exist before routes serve traffic
		migration.Module,

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
