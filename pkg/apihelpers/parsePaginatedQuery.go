package apihelpers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	DEFAULT_PAGE_SIZE = 10
	MAX_PAGE_SIZE     = 100
)

type PaginatedQuery struct {
	Page   int64
	Limit  int64
	Filter bson.M
}

// ParsePaginatedQueryFromCtx reads page, limit and a JSON filter from the
// query string. limit is capped at MAX_PAGE_SIZE.
func ParsePaginatedQueryFromCtx(c *gin.Context) (*PaginatedQuery, error) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		return nil, errors.New("page must be at least 1")
	}

	limit, err := strconv.ParseInt(c.DefaultQuery("limit", strconv.Itoa(DEFAULT_PAGE_SIZE)), 10, 64)
	if err != nil {
		return nil, err
	}
	if limit < 1 {
		return nil, errors.New("limit must be at least 1")
	}
	if limit > MAX_PAGE_SIZE {
		limit = MAX_PAGE_SIZE
	}

	filter := bson.M{}
	if filterStr := c.DefaultQuery("filter", ""); filterStr != "" {
		if err := json.Unmarshal([]byte(filterStr), &filter); err != nil {
			return nil, err
		}
	}

	return &PaginatedQuery{
		Page:   page,
		Limit:  limit,
		Filter: filter,
	}, nil
}
