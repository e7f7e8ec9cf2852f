package apihandlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/himkwtn/expression-mongo/pkg/expression"
	"github.com/himkwtn/expression-mongo/pkg/expression/parser"
	"github.com/himkwtn/expression-mongo/pkg/ranking"
)

type ExpressionReq struct {
	Expression string `json:"expression"`
}

type grammarFunction struct {
	Name  string `json:"name"`
	Arity int    `json:"arity"`
}

func (h *HttpEndpoints) getGrammar(c *gin.Context) {
	functions := []grammarFunction{}
	for _, name := range []string{expression.FUNCTION_EXP, expression.FUNCTION_SIGMOID, expression.FUNCTION_EXP_DECAY} {
		functions = append(functions, grammarFunction{Name: name, Arity: expression.FunctionArity[name]})
	}
	c.JSON(http.StatusOK, gin.H{
		"variables": h.rankingConfig.Whitelist.Names(),
		"functions": functions,
		"operators": []string{"+", "-", "*", "/"},
	})
}

// validateExpression answers 200 with valid=false for non numeric literals
// and 400 for every other violation.
func (h *HttpEndpoints) validateExpression(c *gin.Context) {
	var req ExpressionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	node, err := parser.Parse(req.Expression)
	if err != nil {
		respondWithExpressionError(c, err)
		return
	}

	valid, err := expression.Validate(node, h.rankingConfig.Whitelist)
	if err != nil {
		respondWithExpressionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":     valid,
		"variables": expression.ExtractVariables(node),
	})
}

func (h *HttpEndpoints) compileExpression(c *gin.Context) {
	var req ExpressionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	formula, err := ranking.NewFormula(req.Expression, h.rankingConfig.Whitelist)
	if err != nil {
		respondWithExpressionError(c, err)
		return
	}

	c.JSON(http.StatusOK, formula)
}
