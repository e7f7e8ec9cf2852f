package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/himkwtn/expression-mongo/pkg/expression"
	"github.com/himkwtn/expression-mongo/pkg/expression/parser"
)

// error types reported to API clients
const (
	ERROR_TYPE_PARSE              = "parse_error"
	ERROR_TYPE_INVALID_VARIABLE   = "invalid_variable"
	ERROR_TYPE_INVALID_FUNCTION   = "invalid_function"
	ERROR_TYPE_INVALID_EXPRESSION = "invalid_expression"
	ERROR_TYPE_INVALID_LITERAL    = "invalid_literal"
	ERROR_TYPE_NOT_COMPILABLE     = "not_compilable"
)

func expressionErrorType(err error) string {
	var parseErr *parser.ParseError
	switch {
	case errors.As(err, &parseErr):
		return ERROR_TYPE_PARSE
	case errors.Is(err, expression.ErrInvalidVariable):
		return ERROR_TYPE_INVALID_VARIABLE
	case errors.Is(err, expression.ErrInvalidFunction):
		return ERROR_TYPE_INVALID_FUNCTION
	case errors.Is(err, expression.ErrInvalidExpression):
		return ERROR_TYPE_INVALID_EXPRESSION
	case errors.Is(err, expression.ErrNonNumericLiteral):
		return ERROR_TYPE_INVALID_LITERAL
	case errors.Is(err, expression.ErrNoLowering):
		return ERROR_TYPE_NOT_COMPILABLE
	default:
		return ""
	}
}

func respondWithExpressionError(c *gin.Context, err error) {
	errType := expressionErrorType(err)
	if errType == "" {
		slog.Error("unexpected error while handling expression", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
		return
	}
	slog.Debug("expression rejected", slog.String("errorType", errType), slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "errorType": errType})
}
