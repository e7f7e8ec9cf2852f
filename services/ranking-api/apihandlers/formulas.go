package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	jwthandling "github.com/himkwtn/expression-mongo/pkg/jwt-handling"
	"github.com/himkwtn/expression-mongo/pkg/ranking"
	"github.com/himkwtn/expression-mongo/pkg/utils"

	mw "github.com/himkwtn/expression-mongo/pkg/apihelpers/middlewares"
	rankingDB "github.com/himkwtn/expression-mongo/pkg/db/ranking"
	rankingTypes "github.com/himkwtn/expression-mongo/pkg/ranking/types"
)

type SaveFormulaReq struct {
	Key         string `json:"key"`
	Expression  string `json:"expression"`
	Description string `json:"description"`
}

func (h *HttpEndpoints) getFormulas(c *gin.Context) {
	instanceID := c.Param("instanceID")
	onlyValid := c.DefaultQuery("onlyValid", "false") == "true"

	formulas, err := h.rankingDBConn.GetFormulas(instanceID, onlyValid)
	if err != nil {
		slog.Error("failed to get formulas", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get formulas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"formulas": formulas})
}

func (h *HttpEndpoints) getFormula(c *gin.Context) {
	instanceID := c.Param("instanceID")
	key := c.Param("key")

	formula, err := h.rankingDBConn.GetFormulaByKey(instanceID, key)
	if err != nil {
		if errors.Is(err, rankingDB.ErrFormulaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		slog.Error("failed to get formula", slog.String("instanceID", instanceID), slog.String("key", key), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get formula"})
		return
	}

	c.JSON(http.StatusOK, formula)
}

func (h *HttpEndpoints) saveFormula(c *gin.Context) {
	token := c.MustGet(mw.CtxKeyValidatedToken).(*jwthandling.ManagementUserClaims)
	instanceID := c.Param("instanceID")

	var req SaveFormulaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !utils.IsURLSafe(req.Key) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid formula key"})
		return
	}

	formula, err := ranking.NewFormula(req.Expression, h.rankingConfig.Whitelist)
	if err != nil {
		respondWithExpressionError(c, err)
		return
	}

	saved, err := h.rankingDBConn.SaveFormula(instanceID, rankingTypes.RankingFormula{
		Key:         req.Key,
		Expression:  req.Expression,
		Description: req.Description,
		Variables:   formula.Variables,
		Valid:       true,
		CreatedBy:   token.Subject,
	})
	if err != nil {
		slog.Error("failed to save formula", slog.String("instanceID", instanceID), slog.String("key", req.Key), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save formula"})
		return
	}

	slog.Info("ranking formula saved", slog.String("instanceID", instanceID), slog.String("key", req.Key), slog.String("userID", token.Subject))
	c.JSON(http.StatusOK, saved)
}

func (h *HttpEndpoints) deleteFormula(c *gin.Context) {
	token := c.MustGet(mw.CtxKeyValidatedToken).(*jwthandling.ManagementUserClaims)
	instanceID := c.Param("instanceID")
	key := c.Param("key")

	if err := h.rankingDBConn.DeleteFormula(instanceID, key); err != nil {
		if errors.Is(err, rankingDB.ErrFormulaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		slog.Error("failed to delete formula", slog.String("instanceID", instanceID), slog.String("key", key), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete formula"})
		return
	}

	slog.Info("ranking formula deleted", slog.String("instanceID", instanceID), slog.String("key", key), slog.String("userID", token.Subject))
	c.JSON(http.StatusOK, gin.H{"message": "formula deleted"})
}
