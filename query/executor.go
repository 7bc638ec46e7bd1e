package query

import (
	"context"
	"fmt"

	"github.com/rediwo/mongo-join/logger"
	"github.com/rediwo/mongo-join/types"
	"github.com/rediwo/mongo-join/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Executor compiles queries against a schema registry and runs them on a
// Store. It holds no per-query state and is safe for concurrent use when its
// Store is.
type Executor struct {
	registry types.SchemaRegistry
	store    types.Store
	logger   logger.Logger
}

// NewExecutor creates an executor logging through the global logger
func NewExecutor(registry types.SchemaRegistry, store types.Store) *Executor {
	return &Executor{registry: registry, store: store}
}

// SetLogger sets the logger used for debug output; nil means the global logger
func (e *Executor) SetLogger(l logger.Logger) {
	e.logger = l
}

// Compile is Compile against the executor's registry
func (e *Executor) Compile(modelName string, opts types.QueryOptions) (mongo.Pipeline, error) {
	return Compile(e.registry, modelName, opts)
}

// Find runs one query on modelName and returns the requested page with the
// total number of matches. Invalid queries fail with *Error before the store
// is called; store failures come back as *StoreError.
func (e *Executor) Find(ctx context.Context, modelName string, opts types.QueryOptions) (*types.Result, error) {
	model, err := e.registry.Model(modelName)
	if err != nil {
		return nil, invalid(modelName, err)
	}

	pipeline, err := compile(e.registry, model, opts)
	if err != nil {
		return nil, err
	}

	collection := model.CollectionName()
	if opts.Debug {
		e.logPipeline(collection, pipeline)
	}

	docs, err := e.store.Aggregate(ctx, collection, pipeline)
	if err != nil {
		return nil, &StoreError{Collection: collection, Err: err}
	}

	result, err := decodeEnvelope(docs)
	if err != nil {
		return nil, &StoreError{Collection: collection, Err: err}
	}
	for i, doc := range result.Results {
		result.Results[i] = Strip(doc)
	}
	return result, nil
}

func (e *Executor) logPipeline(collection string, pipeline mongo.Pipeline) {
	log := logger.Or(e.logger)
	if f, ok := e.store.(types.PipelineFormatter); ok {
		log.Info("Pipeline on %s:\n%s", collection, f.FormatPipeline(collection, pipeline))
		return
	}

	data, err := bson.MarshalExtJSONIndent(bson.D{{Key: "pipeline", Value: pipeline}}, false, false, "", "  ")
	if err != nil {
		log.Warn("Failed to render pipeline on %s: %v", collection, err)
		return
	}
	log.Info("Pipeline on %s:\n%s", collection, data)
}

// decodeEnvelope reads the single document produced by the $facet stage.
// No document at all is read as an empty page.
func decodeEnvelope(docs []bson.M) (*types.Result, error) {
	result := &types.Result{Results: []bson.M{}}
	if len(docs) == 0 {
		return result, nil
	}
	if len(docs) > 1 {
		return nil, fmt.Errorf("expected one facet document, got %d", len(docs))
	}
	envelope := docs[0]

	counts, err := documents(envelope[CountField])
	if err != nil {
		return nil, fmt.Errorf("invalid %s branch: %w", CountField, err)
	}
	if len(counts) > 0 {
		result.Count = utils.ToInt64(counts[0][TotalField])
	}

	results, err := documents(envelope[ResultsField])
	if err != nil {
		return nil, fmt.Errorf("invalid %s branch: %w", ResultsField, err)
	}
	result.Results = results
	return result, nil
}

// documents converts a decoded array of documents to []bson.M. A missing
// branch is an empty one.
func documents(v any) ([]bson.M, error) {
	var items []any
	switch val := v.(type) {
	case nil:
		return []bson.M{}, nil
	case bson.A:
		items = val
	case []any:
		items = val
	case []bson.M:
		return val, nil
	default:
		return nil, fmt.Errorf("expected an array, got %T", v)
	}

	out := make([]bson.M, 0, len(items))
	for _, item := range items {
		doc, err := toM(item)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func toM(v any) (bson.M, error) {
	switch val := v.(type) {
	case bson.M:
		return val, nil
	case map[string]any:
		return bson.M(val), nil
	case bson.D:
		m := make(bson.M, len(val))
		for _, e := range val {
			m[e.Key] = e.Value
		}
		return m, nil
	default:
		return nil, fmt.Errorf("expected a document, got %T", v)
	}
}
