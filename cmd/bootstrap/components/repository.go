package components

import (
	"creditline-service/internal/infra/repository"
	"creditline-service/internal/usecase/commands"
	"creditline-service/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewCreditLineMemoryRepository,
			fx.As(new(commands.CreditLineRepository)),
			fx.As(new(queries.CreditLineReadStore)),
		),
		fx.Annotate(
			repository.NewTransactionMemoryRepository,
			fx.As(new(commands.TransactionRepository)),
			fx.As(new(queries.TransactionReadStore)),
		),
		fx.Annotate(
			repository.NewRiskEvaluationMemoryRepository,
			fx.As(new(commands.RiskEvaluationRepository)),
		),
	),
)
