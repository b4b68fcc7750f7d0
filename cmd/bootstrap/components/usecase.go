package components

import (
	"creditline-service/internal/domain/risk"
	"creditline-service/internal/pkg/clock"
	"creditline-service/internal/usecase/commands"
	"creditline-service/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		risk.NewPlaceholderFactorSource,
		fx.As(new(risk.FactorSource)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCreditLineCommands,
		commands.NewRiskCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCreditLineQueries,
	),
)
