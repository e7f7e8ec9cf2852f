package ranking

import (
	"context"
	"log/slog"
	"time"

	"github.com/himkwtn/expression-mongo/pkg/db"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection names
const (
	COLLECTION_NAME_POSTS    = "posts"
	COLLECTION_NAME_FORMULAS = "rankingFormulas"
)

type RankingDBService struct {
	DBClient        *mongo.Client
	timeout         int
	noCursorTimeout bool
	DBNamePrefix    string
	InstanceIDs     []string
}

func NewRankingDBService(configs db.DBConfig) (*RankingDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)

	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()

	if err != nil {
		return nil, err
	}

	rankingDBSc := &RankingDBService{
		DBClient:        dbClient,
		timeout:         configs.Timeout,
		noCursorTimeout: configs.NoCursorTimeout,
		DBNamePrefix:    configs.DBNamePrefix,
		InstanceIDs:     configs.InstanceIDs,
	}

	if configs.RunIndexCreation {
		rankingDBSc.ensureIndexes()
	}
	return rankingDBSc, nil
}

func (dbService *RankingDBService) getDBName(instanceID string) string {
	return dbService.DBNamePrefix + instanceID + "_rankingDB"
}

func (dbService *RankingDBService) collectionPosts(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_POSTS)
}

func (dbService *RankingDBService) collectionFormulas(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_FORMULAS)
}

func (dbService *RankingDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *RankingDBService) ensureIndexes() {
	slog.Debug("Ensuring indexes for ranking DB")
	for _, instanceID := range dbService.InstanceIDs {
		if err := dbService.CreateDefaultIndexesForFormulasCollection(instanceID); err != nil {
			slog.Error("Error creating indexes for ranking formulas", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
		}
	}
}
