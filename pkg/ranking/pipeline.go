package ranking

import (
	"github.com/himkwtn/expression-mongo/pkg/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const DEFAULT_SCORE_FIELD = "score"

type PipelineOptions struct {
	// ScoreField receives the computed score, DEFAULT_SCORE_FIELD if empty.
	ScoreField string
	// Filter is applied before scoring.
	Filter bson.M
	// DateFields lists fields stored as dates. They are converted to epoch
	// milliseconds before scoring when the formula uses them.
	DateFields []string
	Skip       int64
	Limit      int64
}

// BuildPipeline returns the aggregation pipeline that scores documents with
// the formula and returns them best first.
func BuildPipeline(f *Formula, opts PipelineOptions) mongo.Pipeline {
	scoreField := opts.ScoreField
	if scoreField == "" {
		scoreField = DEFAULT_SCORE_FIELD
	}

	match := MatchFilter(f, opts.Filter)
	fields := f.Fields()

	pipeline := mongo.Pipeline{}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}

	conversions := bson.D{}
	for _, field := range fields {
		if !utils.ContainsString(opts.DateFields, field) {
			continue
		}
		conversions = append(conversions, bson.E{Key: field, Value: bson.M{"$toLong": "$" + field}})
	}
	if len(conversions) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$addFields", Value: conversions}})
	}

	pipeline = append(pipeline,
		bson.D{{Key: "$addFields", Value: bson.D{{Key: scoreField, Value: f.Tree}}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: scoreField, Value: -1}, {Key: "_id", Value: 1}}}},
	)
	if opts.Skip > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: opts.Skip}})
	}
	if opts.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: opts.Limit}})
	}
	return pipeline
}

// MatchFilter extends filter so that only documents holding every field the
// formula reads are scored. filter itself is left untouched.
func MatchFilter(f *Formula, filter bson.M) bson.M {
	match := bson.M{}
	for k, v := range filter {
		match[k] = v
	}
	for _, field := range f.Fields() {
		if _, ok := match[field]; ok {
			continue
		}
		match[field] = bson.M{"$exists": true}
	}
	return match
}
