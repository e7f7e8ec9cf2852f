package apihandlers

import (
	"errors"
	"net/http"
	"testing"

	rankingTypes "github.com/himkwtn/expression-mongo/pkg/ranking/types"
)

func TestSaveFormula(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		router := newTestRouter(newFakeRankingDB())
		w := doRequest(router, http.MethodPost, "/v1/instances/inst/formulas", `{"key":"hot","expression":"commentsCount"}`, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("instance not allowed", func(t *testing.T) {
		router := newTestRouter(newFakeRankingDB())
		w := doRequest(router, http.MethodPost, "/v1/instances/other/formulas", `{"key":"hot","expression":"commentsCount"}`, bearerHeader(t, false))
		if w.Code != http.StatusBadRequest {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("invalid key", func(t *testing.T) {
		router := newTestRouter(newFakeRankingDB())
		w := doRequest(router, http.MethodPost, "/v1/instances/inst/formulas", `{"key":"hot formula","expression":"commentsCount"}`, bearerHeader(t, false))
		if w.Code != http.StatusBadRequest {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("invalid expression", func(t *testing.T) {
		dbConn := newFakeRankingDB()
		router := newTestRouter(dbConn)
		w := doRequest(router, http.MethodPost, "/v1/instances/inst/formulas", `{"key":"hot","expression":"likes * 2"}`, bearerHeader(t, false))
		if w.Code != http.StatusBadRequest {
			t.Errorf("unexpected status: %d", w.Code)
		}
		if len(dbConn.formulas) != 0 {
			t.Error("invalid formula should not be stored")
		}
	})

	t.Run("saved", func(t *testing.T) {
		dbConn := newFakeRankingDB()
		router := newTestRouter(dbConn)
		w := doRequest(router, http.MethodPost, "/v1/instances/inst/formulas", `{"key":"hot","expression":"commentsCount + sharedCount * 2","description":"hot posts"}`, bearerHeader(t, false))
		if w.Code != http.StatusOK {
			t.Fatalf("unexpected status: %d (%s)", w.Code, w.Body.String())
		}
		saved, ok := dbConn.formulas["hot"]
		if !ok {
			t.Fatal("formula not stored")
		}
		if !saved.Valid || saved.CreatedBy != "user-1" || saved.Description != "hot posts" {
			t.Errorf("unexpected formula: %+v", saved)
		}
		if len(saved.Variables) != 2 || saved.Variables[0] != "commentsCount" || saved.Variables[1] != "sharedCount" {
			t.Errorf("unexpected variables: %v", saved.Variables)
		}
	})

	t.Run("db error", func(t *testing.T) {
		dbConn := newFakeRankingDB()
		dbConn.failWith = errors.New("connection lost")
		router := newTestRouter(dbConn)
		w := doRequest(router, http.MethodPost, "/v1/instances/inst/formulas", `{"key":"hot","expression":"commentsCount"}`, bearerHeader(t, false))
		if w.Code != http.StatusInternalServerError {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})
}

func TestGetFormulas(t *testing.T) {
	dbConn := newFakeRankingDB()
	dbConn.formulas["hot"] = rankingTypes.RankingFormula{Key: "hot", Expression: "commentsCount", Valid: true}
	dbConn.formulas["old"] = rankingTypes.RankingFormula{Key: "old", Expression: "views", Valid: false}
	router := newTestRouter(dbConn)

	t.Run("all", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/v1/instances/inst/formulas", "", apiKeyHeader())
		if w.Code != http.StatusOK {
			t.Fatalf("unexpected status: %d", w.Code)
		}
		if formulas := decodeBody(t, w)["formulas"].([]interface{}); len(formulas) != 2 {
			t.Errorf("unexpected formulas: %v", formulas)
		}
	})

	t.Run("only valid", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/v1/instances/inst/formulas?onlyValid=true", "", apiKeyHeader())
		if w.Code != http.StatusOK {
			t.Fatalf("unexpected status: %d", w.Code)
		}
		if formulas := decodeBody(t, w)["formulas"].([]interface{}); len(formulas) != 1 {
			t.Errorf("unexpected formulas: %v", formulas)
		}
	})

	t.Run("by key", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/v1/instances/inst/formulas/hot", "", apiKeyHeader())
		if w.Code != http.StatusOK {
			t.Fatalf("unexpected status: %d", w.Code)
		}
		if decodeBody(t, w)["key"] != "hot" {
			t.Errorf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/v1/instances/inst/formulas/cold", "", apiKeyHeader())
		if w.Code != http.StatusNotFound {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("without api key", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/v1/instances/inst/formulas", "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})
}

func TestDeleteFormula(t *testing.T) {
	dbConn := newFakeRankingDB()
	dbConn.formulas["hot"] = rankingTypes.RankingFormula{Key: "hot", Expression: "commentsCount", Valid: true}
	router := newTestRouter(dbConn)

	t.Run("not admin", func(t *testing.T) {
		w := doRequest(router, http.MethodDelete, "/v1/instances/inst/formulas/hot", "", bearerHeader(t, false))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("admin", func(t *testing.T) {
		w := doRequest(router, http.MethodDelete, "/v1/instances/inst/formulas/hot", "", bearerHeader(t, true))
		if w.Code != http.StatusOK {
			t.Errorf("unexpected status: %d", w.Code)
		}
		if _, ok := dbConn.formulas["hot"]; ok {
			t.Error("formula should be deleted")
		}
	})

	t.Run("already deleted", func(t *testing.T) {
		w := doRequest(router, http.MethodDelete, "/v1/instances/inst/formulas/hot", "", bearerHeader(t, true))
		if w.Code != http.StatusNotFound {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})
}
