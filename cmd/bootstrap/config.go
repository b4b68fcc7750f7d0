package bootstrap

import (
	"creditline-service/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.RiskConfig { return cfg.Risk },
	),
)
