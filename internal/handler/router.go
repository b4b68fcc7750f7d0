package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"creditline-service/internal/handler/api"
	"creditline-service/internal/handler/middleware"
	"creditline-service/internal/pkg/config"
	"creditline-service/internal/telemetry"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	creditLineHandler *api.CreditLineHandler,
	riskHandler *api.RiskHandler,
	jobsHandler *api.JobsHandler,
	adminAuth *middleware.AdminAuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, creditLineHandler, riskHandler, jobsHandler, adminAuth)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	creditLineHandler *api.CreditLineHandler,
	riskHandler *api.RiskHandler,
	jobsHandler *api.JobsHandler,
	adminAuth *middleware.AdminAuthMiddleware,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(telemetry.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		creditLines := apiGroup.Group("/credit-lines")
		{
			addRoutes(creditLines, []route{
				{Method: http.MethodPost, Path: "", Handler: creditLineHandler.Create},
				{Method: http.MethodGet, Path: "/:id", Handler: creditLineHandler.Get},
				{Method: http.MethodPost, Path: "/:id/draw", Handler: creditLineHandler.Draw},
				{Method: http.MethodPost, Path: "/:id/repay", Handler: creditLineHandler.Repay},
				{Method: http.MethodGet, Path: "/:id/transactions", Handler: creditLineHandler.ListTransactions},
			})

			adminOnly := creditLines.Group("")
			adminOnly.Use(adminAuth.RequireAdminKey())
			addRoutes(adminOnly, []route{
				{Method: http.MethodPost, Path: "/:id/suspend", Handler: creditLineHandler.Suspend},
				{Method: http.MethodPost, Path: "/:id/close", Handler: creditLineHandler.Close},
			})
		}

		riskGroup := apiGroup.Group("/risk")
		{
			addRoutes(riskGroup, []route{
				{Method: http.MethodPost, Path: "/evaluations", Handler: riskHandler.Evaluate},
				{Method: http.MethodGet, Path: "/evaluations/:wallet/validity", Handler: riskHandler.Validity},
			})

			adminOnly := riskGroup.Group("")
			adminOnly.Use(adminAuth.RequireAdminKey())
			addRoutes(adminOnly, []route{
				{Method: http.MethodPost, Path: "/evaluations/sweep", Handler: riskHandler.Sweep},
			})
		}

		jobs := apiGroup.Group("/jobs")
		jobs.Use(adminAuth.RequireAdminKey())
		{
			addRoutes(jobs, []route{
				{Method: http.MethodPost, Path: "", Handler: jobsHandler.Enqueue},
				{Method: http.MethodGet, Path: "/failed", Handler: jobsHandler.ListFailed},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, r.Handler)
		case http.MethodPost:
			g.POST(r.Path, r.Handler)
		case http.MethodPut:
			g.PUT(r.Path, r.Handler)
		case http.MethodPatch:
			g.PATCH(r.Path, r.Handler)
		case http.MethodDelete:
			g.DELETE(r.Path, r.Handler)
		default:
			g.Any(r.Path, r.Handler)
		}
	}
}
