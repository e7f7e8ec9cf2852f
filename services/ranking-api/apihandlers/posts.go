package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/himkwtn/expression-mongo/pkg/apihelpers"
	"github.com/himkwtn/expression-mongo/pkg/ranking"

	rankingDB "github.com/himkwtn/expression-mongo/pkg/db/ranking"
)

// getRankedPosts scores posts with a stored formula (?formula=<key>) or an
// ad hoc one (?expression=<text>).
func (h *HttpEndpoints) getRankedPosts(c *gin.Context) {
	instanceID := c.Param("instanceID")

	query, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	source, stored, ok := h.formulaSource(c, instanceID)
	if !ok {
		return
	}

	formula, err := ranking.NewFormula(source, h.rankingConfig.Whitelist)
	if err != nil {
		if stored {
			slog.Warn("stored formula no longer compiles", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "errorType": expressionErrorType(err)})
			return
		}
		respondWithExpressionError(c, err)
		return
	}

	pagination, err := h.rankingDBConn.PaginationFor(instanceID, ranking.MatchFilter(formula, query.Filter), query.Page, query.Limit)
	if err != nil {
		slog.Error("failed to count posts", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count posts"})
		return
	}

	pipeline := ranking.BuildPipeline(formula, ranking.PipelineOptions{
		ScoreField: h.rankingConfig.ScoreField,
		Filter:     query.Filter,
		DateFields: h.rankingConfig.DateFields,
		Skip:       pagination.Skip(),
		Limit:      pagination.PageSize,
	})

	posts, err := h.rankingDBConn.GetRankedPosts(instanceID, pipeline)
	if err != nil {
		slog.Error("failed to rank posts", slog.String("instanceID", instanceID), slog.String("formula", formula.Source), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rank posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":      posts,
		"pagination": pagination,
		"formula":    formula,
	})
}

// formulaSource returns the expression to rank with and whether it was loaded
// from the formula store. If ok is false the response has been written.
func (h *HttpEndpoints) formulaSource(c *gin.Context, instanceID string) (source string, stored bool, ok bool) {
	key := c.Query("formula")
	text := c.Query("expression")

	switch {
	case key != "" && text != "":
		c.JSON(http.StatusBadRequest, gin.H{"error": "use either formula or expression"})
		return "", false, false
	case text != "":
		return text, false, true
	case key == "":
		c.JSON(http.StatusBadRequest, gin.H{"error": "formula or expression required"})
		return "", false, false
	}

	formula, err := h.rankingDBConn.GetFormulaByKey(instanceID, key)
	if err != nil {
		if errors.Is(err, rankingDB.ErrFormulaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return "", false, false
		}
		slog.Error("failed to get formula", slog.String("instanceID", instanceID), slog.String("key", key), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get formula"})
		return "", false, false
	}
	if !formula.Valid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "formula " + key + " is marked invalid: " + formula.LastError})
		return "", false, false
	}
	return formula.Expression, true, true
}
