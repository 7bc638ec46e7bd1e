package populate

import (
	"github.com/rediwo/mongo-join/types"
)

// Build resolves every population path against model and merges the
// resulting chains into one forest. The first path that fails to resolve
// fails the whole build.
func Build(reg types.SchemaRegistry, model types.Model, paths []string) (*Forest, error) {
	forest := NewForest()
	for _, path := range paths {
		fields, err := ResolvePath(reg, model, path)
		if err != nil {
			return nil, err
		}
		forest = forest.Merge(Chain(fields))
	}
	return forest, nil
}
