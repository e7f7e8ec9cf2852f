package apihandlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/himkwtn/expression-mongo/pkg/expression"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	mw "github.com/himkwtn/expression-mongo/pkg/apihelpers/middlewares"
	rankingDB "github.com/himkwtn/expression-mongo/pkg/db/ranking"
	jwthandling "github.com/himkwtn/expression-mongo/pkg/jwt-handling"
	rankingTypes "github.com/himkwtn/expression-mongo/pkg/ranking/types"
)

const (
	testSignKey  = "test-sign-key"
	testAPIKey   = "test-api-key"
	testInstance = "inst"
)

type fakeRankingDB struct {
	formulas     map[string]rankingTypes.RankingFormula
	totalCount   int64
	posts        []bson.M
	lastPipeline mongo.Pipeline
	lastFilter   bson.M
	failWith     error
}

func newFakeRankingDB() *fakeRankingDB {
	return &fakeRankingDB{formulas: map[string]rankingTypes.RankingFormula{}}
}

func (f *fakeRankingDB) GetFormulas(instanceID string, onlyValid bool) ([]rankingTypes.RankingFormula, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	formulas := []rankingTypes.RankingFormula{}
	for _, formula := range f.formulas {
		if onlyValid && !formula.Valid {
			continue
		}
		formulas = append(formulas, formula)
	}
	return formulas, nil
}

func (f *fakeRankingDB) GetFormulaByKey(instanceID string, key string) (rankingTypes.RankingFormula, error) {
	formula, ok := f.formulas[key]
	if !ok {
		return formula, rankingDB.ErrFormulaNotFound
	}
	return formula, nil
}

func (f *fakeRankingDB) SaveFormula(instanceID string, formula rankingTypes.RankingFormula) (rankingTypes.RankingFormula, error) {
	if f.failWith != nil {
		return formula, f.failWith
	}
	formula.CreatedAt = time.Now()
	f.formulas[formula.Key] = formula
	return formula, nil
}

func (f *fakeRankingDB) DeleteFormula(instanceID string, key string) error {
	if _, ok := f.formulas[key]; !ok {
		return rankingDB.ErrFormulaNotFound
	}
	delete(f.formulas, key)
	return nil
}

func (f *fakeRankingDB) PaginationFor(instanceID string, filter bson.M, page int64, limit int64) (*rankingDB.PaginationInfos, error) {
	f.lastFilter = filter
	totalPages := (f.totalCount + limit - 1) / limit
	return &rankingDB.PaginationInfos{
		TotalCount:  f.totalCount,
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    limit,
	}, nil
}

func (f *fakeRankingDB) GetRankedPosts(instanceID string, pipeline mongo.Pipeline) ([]bson.M, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.lastPipeline = pipeline
	return f.posts, nil
}

func newTestRouter(dbConn RankingDB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHTTPHandler(
		testSignKey,
		dbConn,
		[]mw.APIClient{{Name: "feed", Key: testAPIKey}},
		[]string{testInstance},
		RankingConfig{Whitelist: expression.DefaultWhitelist(), DateFields: []string{"createdAt"}},
	)
	h.AddRankingAPI(router.Group("/v1"))
	return router
}

func doRequest(router *gin.Engine, method string, path string, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func apiKeyHeader() map[string]string {
	return map[string]string{mw.HeaderAPIKey: testAPIKey}
}

func bearerHeader(t *testing.T, isAdmin bool) map[string]string {
	token, err := jwthandling.GenerateNewManagementUserToken(time.Minute, "user-1", testInstance, isAdmin, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return map[string]string{mw.HeaderAuthorization: "Bearer " + token}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	body := map[string]interface{}{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected body %s: %v", w.Body.String(), err)
	}
	return body
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", HealthCheckHandle)
	w := doRequest(router, http.MethodGet, "/", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("unexpected status: %d", w.Code)
	}
}

func TestExpressionErrorType(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: &expression.InvalidVariableError{Name: "x"}, want: ERROR_TYPE_INVALID_VARIABLE},
		{err: &expression.InvalidFunctionError{Name: "foo"}, want: ERROR_TYPE_INVALID_FUNCTION},
		{err: expression.ErrInvalidExpression, want: ERROR_TYPE_INVALID_EXPRESSION},
		{err: expression.ErrNonNumericLiteral, want: ERROR_TYPE_INVALID_LITERAL},
		{err: expression.ErrNoLowering, want: ERROR_TYPE_NOT_COMPILABLE},
		{err: errors.New("boom"), want: ""},
	}
	for _, tt := range tests {
		if got := expressionErrorType(tt.err); got != tt.want {
			t.Errorf("expressionErrorType(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
