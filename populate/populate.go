// Package populate compiles population paths ("leader", "members.studiedAt")
// into aggregation stages that join referenced documents in place.
//
// Paths are resolved against a schema registry, merged into a forest where
// paths sharing a prefix share nodes, checked for arrays below the first
// level and then emitted as $lookup/$unwind stages per tree.
package populate

import (
	"github.com/rediwo/mongo-join/types"
	"go.mongodb.org/mongo-driver/mongo"
)

// Pipeline compiles paths for documents of model. It returns no stages and
// the first error when a path does not resolve or a tree is too deep.
func Pipeline(reg types.SchemaRegistry, model types.Model, paths []string) (mongo.Pipeline, error) {
	forest, err := Build(reg, model, paths)
	if err != nil {
		return nil, err
	}

	trees := forest.Trees()
	for _, t := range trees {
		if err := ValidateDepth(t); err != nil {
			return nil, err
		}
	}

	compiler := NewCompiler()
	pipeline := mongo.Pipeline{}
	for _, t := range trees {
		pipeline = append(pipeline, compiler.Stages(model, t)...)
	}
	return pipeline, nil
}
