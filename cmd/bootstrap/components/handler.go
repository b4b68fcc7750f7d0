package components

import (
	"creditline-service/internal/handler"
	"creditline-service/internal/handler/api"
	"creditline-service/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCreditLineHandler,
		api.NewRiskHandler,
		api.NewJobsHandler,
		middleware.NewAdminAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
