package api

import (
	"net/http"
	"strings"
	"time"

	reqdto "creditline-service/internal/handler/dto/request"
	resdto "creditline-service/internal/handler/dto/response"
	"creditline-service/internal/handler/httperr"
	"creditline-service/internal/jobqueue"
	"creditline-service/internal/pkg/errs"
	"creditline-service/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// SweepJobType routes expiry-sweep jobs enqueued on the background queue.
const SweepJobType = "risk.sweep_expired"

var errWalletRequired = errs.New("wallet address is required")

type RiskHandler struct {
	cmds commands.RiskCommands
}

func NewRiskHandler(cmds commands.RiskCommands) *RiskHandler {
	return &RiskHandler{cmds: cmds}
}

// @Summary Evaluate wallet risk
// @Description Return the cached evaluation inside its validity window, or compute a fresh one
// @Tags risk
// @Accept json
// @Produce json
// @Param request body reqdto.EvaluateRiskRequest true "Evaluate risk request"
// @Success 200 {object} resdto.RiskEvaluationResponse
// @Failure 400 {object} map[string]string
// @Router /risk/evaluations [post]
func (h *RiskHandler) Evaluate(c *gin.Context) {
	var req reqdto.EvaluateRiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	wallet := req.GetWalletAddress()
	if wallet == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errWalletRequired, "Wallet address is required", nil)
		return
	}

	result, err := h.cmds.Evaluate(c.Request.Context(), wallet, req.ForceRefresh)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Risk evaluation failed", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromEvaluationResult(result))
}

// @Summary Check evaluation validity
// @Tags risk
// @Produce json
// @Param wallet path string true "Wallet address"
// @Success 200 {object} resdto.EvaluationValidityResponse
// @Failure 400 {object} map[string]string
// @Router /risk/evaluations/{wallet}/validity [get]
func (h *RiskHandler) Validity(c *gin.Context) {
	wallet := strings.TrimSpace(c.Param("wallet"))
	if wallet == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errWalletRequired, "Wallet address is required", nil)
		return
	}
	valid, err := h.cmds.IsValid(c.Request.Context(), wallet)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Validity check failed", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.EvaluationValidityResponse{WalletAddress: wallet, Valid: valid})
}

// @Summary Sweep expired evaluations
// @Description Remove every stored evaluation past its validity window
// @Tags risk
// @Produce json
// @Security AdminKeyAuth
// @Success 200 {object} resdto.SweepResponse
// @Failure 401 {object} map[string]string
// @Router /risk/evaluations/sweep [post]
func (h *RiskHandler) Sweep(c *gin.Context) {
	removed, err := h.cmds.DeleteExpired(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Sweep failed", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.SweepResponse{Removed: removed})
}

type JobsHandler struct {
	queue *jobqueue.Queue
}

func NewJobsHandler(queue *jobqueue.Queue) *JobsHandler {
	return &JobsHandler{queue: queue}
}

// @Summary Enqueue a background job
// @Tags jobs
// @Accept json
// @Produce json
// @Security AdminKeyAuth
// @Param request body reqdto.EnqueueJobRequest true "Enqueue job request"
// @Success 202 {object} resdto.EnqueueJobResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /jobs [post]
func (h *JobsHandler) Enqueue(c *gin.Context) {
	var req reqdto.EnqueueJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	var opts []jobqueue.EnqueueOption
	if req.MaxAttempts != nil {
		opts = append(opts, jobqueue.WithMaxAttempts(*req.MaxAttempts))
	}
	if req.DelayMs != nil {
		opts = append(opts, jobqueue.WithDelay(time.Duration(*req.DelayMs)*time.Millisecond))
	}

	jobID := h.queue.Enqueue(req.Type, req.Payload, opts...)
	c.JSON(http.StatusAccepted, resdto.EnqueueJobResponse{JobID: jobID})
}

// @Summary List quarantined jobs
// @Description Snapshot of jobs that exhausted their retries or had no handler
// @Tags jobs
// @Produce json
// @Security AdminKeyAuth
// @Success 200 {array} resdto.FailedJobResponse
// @Failure 401 {object} map[string]string
// @Router /jobs/failed [get]
func (h *JobsHandler) ListFailed(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"jobs": resdto.FromFailedJobs(h.queue.FailedJobs())})
}
