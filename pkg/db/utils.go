package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func ListCollectionIndexes(ctx context.Context, collection *mongo.Collection) ([]bson.M, error) {
	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		var cmdErr mongo.CommandError
		// NamespaceNotFound: collection not created yet
		if errors.As(err, &cmdErr) && cmdErr.Code == 26 {
			return []bson.M{}, nil
		}
		return nil, err
	}
	defer cursor.Close(ctx)

	indexes := []bson.M{}
	if err = cursor.All(ctx, &indexes); err != nil {
		return nil, err
	}
	return indexes, nil
}

// MissingIndexes returns the models whose name is not present on collection.
func MissingIndexes(ctx context.Context, collection *mongo.Collection, models []mongo.IndexModel) ([]mongo.IndexModel, error) {
	existing, err := ListCollectionIndexes(ctx, collection)
	if err != nil {
		return nil, err
	}
	indexes := make([]map[string]interface{}, len(existing))
	for i, idx := range existing {
		indexes[i] = idx
	}

	missing := []mongo.IndexModel{}
	for _, model := range models {
		if model.Options == nil || model.Options.Name == nil || !hasIndexNamed(indexes, *model.Options.Name) {
			missing = append(missing, model)
		}
	}
	return missing, nil
}

func hasIndexNamed(indexes []map[string]interface{}, name string) bool {
	for _, idx := range indexes {
		if n, ok := idx["name"].(string); ok && n == name {
			return true
		}
	}
	return false
}
