package apihandlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	rankingDB "github.com/himkwtn/expression-mongo/pkg/db/ranking"
	"github.com/himkwtn/expression-mongo/pkg/expression"
	rankingTypes "github.com/himkwtn/expression-mongo/pkg/ranking/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	mw "github.com/himkwtn/expression-mongo/pkg/apihelpers/middlewares"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RankingDB is the part of the ranking DB service the handlers need.
type RankingDB interface {
	GetFormulas(instanceID string, onlyValid bool) ([]rankingTypes.RankingFormula, error)
	GetFormulaByKey(instanceID string, key string) (rankingTypes.RankingFormula, error)
	SaveFormula(instanceID string, formula rankingTypes.RankingFormula) (rankingTypes.RankingFormula, error)
	DeleteFormula(instanceID string, key string) error
	PaginationFor(instanceID string, filter bson.M, page int64, limit int64) (*rankingDB.PaginationInfos, error)
	GetRankedPosts(instanceID string, pipeline mongo.Pipeline) ([]bson.M, error)
}

type RankingConfig struct {
	Whitelist  expression.Whitelist
	DateFields []string
	ScoreField string
}

type HttpEndpoints struct {
	rankingDBConn      RankingDB
	tokenSignKey       string
	apiClients         []mw.APIClient
	allowedInstanceIDs []string
	rankingConfig      RankingConfig
}

func NewHTTPHandler(
	tokenSignKey string,
	rankingDBConn RankingDB,
	apiClients []mw.APIClient,
	allowedInstanceIDs []string,
	rankingConfig RankingConfig,
) *HttpEndpoints {
	if rankingConfig.Whitelist == nil {
		rankingConfig.Whitelist = expression.DefaultWhitelist()
	}
	return &HttpEndpoints{
		tokenSignKey:       tokenSignKey,
		rankingDBConn:      rankingDBConn,
		apiClients:         apiClients,
		allowedInstanceIDs: allowedInstanceIDs,
		rankingConfig:      rankingConfig,
	}
}

func (h *HttpEndpoints) AddRankingAPI(rg *gin.RouterGroup) {
	expressionsGroup := rg.Group("/expressions")
	expressionsGroup.Use(mw.HasValidAPIKey(h.apiClients))
	{
		expressionsGroup.GET("/grammar", h.getGrammar)
		expressionsGroup.POST("/validate", mw.RequirePayload(), h.validateExpression)
		expressionsGroup.POST("/compile", mw.RequirePayload(), h.compileExpression)
	}

	instanceGroup := rg.Group("/instances/:instanceID")

	readGroup := instanceGroup.Group("")
	readGroup.Use(mw.HasValidAPIKey(h.apiClients))
	readGroup.Use(mw.IsInstanceIDAllowed(h.allowedInstanceIDs))
	{
		readGroup.GET("/formulas", h.getFormulas)
		readGroup.GET("/formulas/:key", h.getFormula)
		readGroup.GET("/posts/ranked", h.getRankedPosts)
	}

	writeGroup := instanceGroup.Group("")
	writeGroup.Use(mw.GetAndValidateManagementUserJWT(h.tokenSignKey))
	writeGroup.Use(mw.IsInstanceIDAllowed(h.allowedInstanceIDs))
	{
		writeGroup.POST("/formulas", mw.RequirePayload(), h.saveFormula)
		writeGroup.DELETE("/formulas/:key", mw.IsAdminUser(), h.deleteFormula)
	}
}
