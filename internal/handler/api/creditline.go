package api

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"creditline-service/internal/domain/creditline"
	reqdto "creditline-service/internal/handler/dto/request"
	resdto "creditline-service/internal/handler/dto/response"
	"creditline-service/internal/handler/httperr"
	"creditline-service/internal/pkg/errs"
	"creditline-service/internal/usecase/commands"
	"creditline-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreditLineHandler struct {
	cmds commands.CreditLineCommands
	q    queries.CreditLineQueries
	risk commands.RiskCommands
}

func NewCreditLineHandler(cmds commands.CreditLineCommands, q queries.CreditLineQueries, risk commands.RiskCommands) *CreditLineHandler {
	return &CreditLineHandler{cmds: cmds, q: q, risk: risk}
}

// @Summary Create credit line
// @Description Create a credit line with an explicit limit, or let the risk engine derive an advisory one from a wallet address
// @Tags credit-lines
// @Accept json
// @Produce json
// @Param request body reqdto.CreateCreditLineRequest true "Create credit line request"
// @Success 201 {object} resdto.CreditLineResponse
// @Failure 400 {object} map[string]string
// @Router /credit-lines [post]
func (h *CreditLineHandler) Create(c *gin.Context) {
	var req reqdto.CreateCreditLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	limitCents, err := h.resolveLimit(c, req)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Could not resolve credit limit", nil)
		return
	}

	line, err := h.cmds.Create(c.Request.Context(), commands.CreateCreditLineInput{
		BorrowerID: req.BorrowerID,
		LimitCents: limitCents,
	})
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Create credit line failed", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCreditLine(line))
}

// resolveLimit prefers the explicit limit; otherwise it consults the risk
// engine for the wallet's advisory limit.
func (h *CreditLineHandler) resolveLimit(c *gin.Context, req reqdto.CreateCreditLineRequest) (int64, error) {
	if req.LimitCents != nil {
		return *req.LimitCents, nil
	}
	if req.WalletAddress == nil || *req.WalletAddress == "" {
		return 0, errs.New("either limit_cents or wallet_address is required")
	}
	result, err := h.risk.Evaluate(c.Request.Context(), *req.WalletAddress, false)
	if err != nil {
		return 0, err
	}
	advisory, err := strconv.ParseFloat(result.Evaluation.CreditLimit(), 64)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(advisory * 100)), nil
}

// @Summary Get credit line
// @Tags credit-lines
// @Produce json
// @Param id path string true "Credit line ID"
// @Success 200 {object} resdto.CreditLineResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /credit-lines/{id} [get]
func (h *CreditLineHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	line, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCreditLine(line))
}

// @Summary Draw against a credit line
// @Tags credit-lines
// @Accept json
// @Produce json
// @Param id path string true "Credit line ID"
// @Param request body reqdto.DrawRequest true "Draw request"
// @Success 200 {object} resdto.CreditLineResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /credit-lines/{id}/draw [post]
func (h *CreditLineHandler) Draw(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.DrawRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	line, err := h.cmds.Draw(c.Request.Context(), id, req.BorrowerID, req.AmountCents, req.GetCurrency())
	if err != nil {
		abortWithLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCreditLine(line))
}

// @Summary Repay a credit line
// @Tags credit-lines
// @Accept json
// @Produce json
// @Param id path string true "Credit line ID"
// @Param request body reqdto.RepayRequest true "Repay request"
// @Success 200 {object} resdto.CreditLineResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /credit-lines/{id}/repay [post]
func (h *CreditLineHandler) Repay(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.RepayRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	line, err := h.cmds.Repay(c.Request.Context(), id, req.AmountCents, req.GetCurrency())
	if err != nil {
		abortWithLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCreditLine(line))
}

// @Summary Suspend a credit line
// @Tags credit-lines
// @Produce json
// @Security AdminKeyAuth
// @Param id path string true "Credit line ID"
// @Success 200 {object} resdto.CreditLineResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /credit-lines/{id}/suspend [post]
func (h *CreditLineHandler) Suspend(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	line, err := h.cmds.Suspend(c.Request.Context(), id)
	if err != nil {
		abortWithLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCreditLine(line))
}

// @Summary Close a credit line
// @Tags credit-lines
// @Produce json
// @Security AdminKeyAuth
// @Param id path string true "Credit line ID"
// @Success 200 {object} resdto.CreditLineResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /credit-lines/{id}/close [post]
func (h *CreditLineHandler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	line, err := h.cmds.Close(c.Request.Context(), id)
	if err != nil {
		abortWithLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCreditLine(line))
}

// @Summary List transactions
// @Description List a credit line's ledger entries, newest first, with optional type and time-range filters
// @Tags credit-lines
// @Produce json
// @Param id path string true "Credit line ID"
// @Param type query string false "Transaction type (draw, repayment, status_change)"
// @Param from query string false "Inclusive RFC3339 lower bound"
// @Param to query string false "Inclusive RFC3339 upper bound"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 20)"
// @Success 200 {object} resdto.TransactionPageResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /credit-lines/{id}/transactions [get]
func (h *CreditLineHandler) ListTransactions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	filters, page, limit, err := parseTransactionQuery(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	result, err := h.q.ListTransactions(c.Request.Context(), id, filters, page, limit)
	if err != nil {
		abortWithLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTransactionPage(result))
}

func parseTransactionQuery(c *gin.Context) (queries.TransactionFilters, int, int, error) {
	var filters queries.TransactionFilters

	if v := c.Query("type"); v != "" {
		txType := creditline.TransactionType(v)
		if !txType.IsValid() {
			return filters, 0, 0, errs.New("unknown transaction type: " + v)
		}
		filters.Type = &txType
	}
	if v := c.Query("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filters, 0, 0, err
		}
		filters.From = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filters, 0, 0, err
		}
		filters.To = &to
	}

	page := 1
	if v := c.Query("page"); v != "" {
		iv, err := strconv.Atoi(v)
		if err != nil || iv < 1 {
			return filters, 0, 0, errs.New("page must be a positive integer")
		}
		page = iv
	}
	limit := queries.DefaultPageLimit
	if v := c.Query("limit"); v != "" {
		iv, err := strconv.Atoi(v)
		if err != nil || iv < 1 {
			return filters, 0, 0, errs.New("limit must be a positive integer")
		}
		limit = queries.ValidateLimit(iv)
	}
	return filters, page, limit, nil
}

// abortWithLedgerError maps ledger error kinds onto HTTP statuses.
func abortWithLedgerError(c *gin.Context, err error) {
	var transitionErr *creditline.TransitionError
	switch {
	case errors.Is(err, errs.ErrCreditLineNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Credit line not found", nil)
	case errors.As(err, &transitionErr):
		httperr.AbortWithError(c, http.StatusConflict, err, "Invalid status transition", gin.H{
			"currentStatus": transitionErr.Current.String(),
			"action":        transitionErr.Action,
		})
	case errors.Is(err, creditline.ErrNotActive):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Credit line is not active", nil)
	case errors.Is(err, creditline.ErrBorrowerMismatch):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Borrower does not own this credit line", nil)
	case errors.Is(err, creditline.ErrInvalidAmount):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Amount must be positive", nil)
	case errors.Is(err, creditline.ErrOverLimit):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Draw exceeds credit limit", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
	}
}
