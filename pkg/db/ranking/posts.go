package ranking

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (dbService *RankingDBService) GetPostsCount(instanceID string, filter bson.M) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	return dbService.collectionPosts(instanceID).CountDocuments(ctx, filter)
}

// GetRankedPosts runs a scoring pipeline (see ranking.BuildPipeline) on the
// posts collection.
func (dbService *RankingDBService) GetRankedPosts(instanceID string, pipeline mongo.Pipeline) (posts []bson.M, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	opts := options.Aggregate().SetAllowDiskUse(true)
	cursor, err := dbService.collectionPosts(instanceID).Aggregate(ctx, pipeline, opts)
	if err != nil {
		return posts, err
	}
	defer cursor.Close(ctx)

	posts = []bson.M{}
	err = cursor.All(ctx, &posts)
	return posts, err
}

// PaginationFor counts the posts matching filter and returns the page
// window.
func (dbService *RankingDBService) PaginationFor(instanceID string, filter bson.M, page int64, limit int64) (*PaginationInfos, error) {
	count, err := dbService.GetPostsCount(instanceID, filter)
	if err != nil {
		return nil, err
	}
	return prepPaginationInfos(count, page, limit), nil
}

// Skip is the number of documents before the current page.
func (p *PaginationInfos) Skip() int64 {
	if p.CurrentPage < 1 {
		return 0
	}
	return (p.CurrentPage - 1) * p.PageSize
}
