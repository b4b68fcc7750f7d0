package bootstrap

import (
	"creditline-service/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	QueueModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
