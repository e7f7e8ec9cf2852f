package apihelpers

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
)

func contextForQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/posts?"+query, nil)
	return c
}

func TestParsePaginatedQueryFromCtx(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		q, err := ParsePaginatedQueryFromCtx(contextForQuery(""))
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if q.Page != 1 || q.Limit != DEFAULT_PAGE_SIZE || len(q.Filter) != 0 {
			t.Errorf("unexpected values: %+v", q)
		}
	})

	t.Run("values", func(t *testing.T) {
		q, err := ParsePaginatedQueryFromCtx(contextForQuery("page=3&limit=500&filter=" + url.QueryEscape(`{"author":"x"}`)))
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if q.Page != 3 || q.Limit != MAX_PAGE_SIZE || q.Filter["author"] != "x" {
			t.Errorf("unexpected values: %+v", q)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, query := range []string{"page=a", "page=0", "limit=0", "limit=x", "filter=%7B"} {
			if _, err := ParsePaginatedQueryFromCtx(contextForQuery(query)); err == nil {
				t.Errorf("should produce error for %s", query)
			}
		}
	})
}
