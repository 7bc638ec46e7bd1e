package types

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store runs aggregation pipelines against a collection. One call is one
// round trip to the database.
type Store interface {
	Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline) ([]bson.M, error)
}

// PipelineFormatter is implemented by stores that can render a pipeline the
// way they would send it, for debug output.
type PipelineFormatter interface {
	FormatPipeline(collection string, pipeline mongo.Pipeline) string
}
