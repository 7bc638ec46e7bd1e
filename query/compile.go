// Package query assembles and runs population queries: it compiles
// QueryOptions into one aggregation pipeline, sends it to a Store in a single
// round trip and cleans the documents that come back.
package query

import (
	"github.com/rediwo/mongo-join/populate"
	"github.com/rediwo/mongo-join/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Names of the two branches of the final $facet stage
const (
	CountField   = "count"
	ResultsField = "results"
	TotalField   = "total"
)

// Compile builds the pipeline for one query on modelName: population stages,
// then $match, then $sort, then a $facet that counts every match and slices
// the requested page. Errors are *Error values and no stages are returned
// with them.
func Compile(reg types.SchemaRegistry, modelName string, opts types.QueryOptions) (mongo.Pipeline, error) {
	model, err := reg.Model(modelName)
	if err != nil {
		return nil, invalid(modelName, err)
	}
	return compile(reg, model, opts)
}

func compile(reg types.SchemaRegistry, model types.Model, opts types.QueryOptions) (mongo.Pipeline, error) {
	opts = opts.WithDefaults()

	pipeline, err := populate.Pipeline(reg, model, opts.Populate)
	if err != nil {
		return nil, invalid(model.ModelName(), err)
	}

	if len(opts.Find) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: NormalizeFilter(opts.Find)}})
	}
	if len(opts.Sort) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: opts.Sort}})
	}
	return append(pipeline, facetStage(opts.Skip, opts.Limit)), nil
}

func facetStage(skip, limit int64) bson.D {
	return bson.D{{Key: "$facet", Value: bson.D{
		{Key: CountField, Value: bson.A{
			bson.D{{Key: "$count", Value: TotalField}},
		}},
		{Key: ResultsField, Value: bson.A{
			bson.D{{Key: "$skip", Value: skip}},
			bson.D{{Key: "$limit", Value: limit}},
		}},
	}}}
}
