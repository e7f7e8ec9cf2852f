package ranking

import (
	"errors"
	"time"

	"github.com/himkwtn/expression-mongo/pkg/db"
	rankingTypes "github.com/himkwtn/expression-mongo/pkg/ranking/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrFormulaNotFound = errors.New("no formula found with the given key")

var indexesForFormulasCollection = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "key", Value: 1},
		},
		Options: options.Index().SetName("key_1").SetUnique(true),
	},
	{
		Keys: bson.D{
			{Key: "valid", Value: 1},
			{Key: "checkedAt", Value: 1},
		},
		Options: options.Index().SetName("valid_1_checkedAt_1"),
	},
}

func (dbService *RankingDBService) CreateDefaultIndexesForFormulasCollection(instanceID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	collection := dbService.collectionFormulas(instanceID)
	missing, err := db.MissingIndexes(ctx, collection, indexesForFormulasCollection)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}
	_, err = collection.Indexes().CreateMany(ctx, missing)
	return err
}

// SaveFormula inserts or replaces the formula with the same key. CreatedAt of
// an existing formula is kept.
func (dbService *RankingDBService) SaveFormula(instanceID string, formula rankingTypes.RankingFormula) (rankingTypes.RankingFormula, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	now := time.Now()
	filter := bson.M{"key": formula.Key}
	update := bson.M{
		"$set": bson.M{
			"key":         formula.Key,
			"expression":  formula.Expression,
			"description": formula.Description,
			"variables":   formula.Variables,
			"valid":       formula.Valid,
			"lastError":   formula.LastError,
			"createdBy":   formula.CreatedBy,
			"updatedAt":   now,
			"checkedAt":   now,
		},
		"$setOnInsert": bson.M{
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved rankingTypes.RankingFormula
	err := dbService.collectionFormulas(instanceID).FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved)
	return saved, err
}

func (dbService *RankingDBService) GetFormulaByKey(instanceID string, key string) (formula rankingTypes.RankingFormula, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	err = dbService.collectionFormulas(instanceID).FindOne(ctx, bson.M{"key": key}).Decode(&formula)
	if errors.Is(err, mongo.ErrNoDocuments) {
		err = ErrFormulaNotFound
	}
	return formula, err
}

func (dbService *RankingDBService) GetFormulas(instanceID string, onlyValid bool) (formulas []rankingTypes.RankingFormula, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{}
	if onlyValid {
		filter["valid"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "key", Value: 1}})
	if dbService.noCursorTimeout {
		opts.SetNoCursorTimeout(true)
	}

	cursor, err := dbService.collectionFormulas(instanceID).Find(ctx, filter, opts)
	if err != nil {
		return formulas, err
	}
	defer cursor.Close(ctx)

	formulas = []rankingTypes.RankingFormula{}
	err = cursor.All(ctx, &formulas)
	return formulas, err
}

func (dbService *RankingDBService) DeleteFormula(instanceID string, key string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionFormulas(instanceID).DeleteOne(ctx, bson.M{"key": key})
	if err != nil {
		return err
	}
	if res.DeletedCount < 1 {
		return ErrFormulaNotFound
	}
	return nil
}

// MarkFormulaValidity stores the result of re-checking a formula.
func (dbService *RankingDBService) MarkFormulaValidity(instanceID string, key string, valid bool, lastError string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	update := bson.M{"$set": bson.M{
		"valid":     valid,
		"lastError": lastError,
		"checkedAt": time.Now(),
	}}
	res, err := dbService.collectionFormulas(instanceID).UpdateOne(ctx, bson.M{"key": key}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount < 1 {
		return ErrFormulaNotFound
	}
	return nil
}
