package populate

import (
	"fmt"

	"github.com/rediwo/mongo-join/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ScratchPrefix starts the name of every temporary field a pipeline writes
const ScratchPrefix = "_populate_tmp_"

// Compiler turns validated population trees into aggregation stages. Scratch
// field names are unique per Compiler, so one Compiler must be used for all
// trees of one query. It is not safe for concurrent use.
type Compiler struct {
	seq int
}

// NewCompiler returns a compiler whose scratch names start at 0
func NewCompiler() *Compiler {
	return &Compiler{}
}

func (c *Compiler) scratchName() string {
	name := fmt.Sprintf("%s%d", ScratchPrefix, c.seq)
	c.seq++
	return name
}

type join struct {
	path    string
	scratch string
}

// Stages returns the stages that populate t on documents of model.
//
// For each reference, in pre-order, the current value is copied to a
// scratch field, then looked up and unwound in place. The scratch copies are
// restored afterwards in reverse order, so a parent is only reset once its
// children are done. When the root is an array the whole sequence runs on
// unwound elements and is regrouped by _id at the end.
func (c *Compiler) Stages(model types.Model, t Tree) mongo.Pipeline {
	var (
		joins  []join
		stages mongo.Pipeline
	)

	// Walk cannot fail here, the callback never returns an error
	_ = t.Walk(func(v Visit) error {
		if !v.Field.IsJoin() {
			return nil
		}
		j := join{path: v.Path, scratch: c.scratchName()}
		joins = append(joins, j)
		stages = append(stages,
			bson.D{{Key: "$addFields", Value: bson.D{{Key: j.scratch, Value: "$" + j.path}}}},
			lookupStage(v.Field.Collection, j.path),
			unwindStage(j.path),
		)
		return nil
	})

	for i := len(joins) - 1; i >= 0; i-- {
		stages = append(stages, restoreStage(joins[i]))
	}

	root := t.Root()
	if root.IsArray {
		pipeline := mongo.Pipeline{unwindStage(root.Name)}
		pipeline = append(pipeline, stages...)
		return append(pipeline, groupStage(model, root.Name))
	}

	if len(joins) > 0 {
		scratch := make(bson.A, len(joins))
		for i, j := range joins {
			scratch[i] = j.scratch
		}
		stages = append(stages, bson.D{{Key: "$unset", Value: scratch}})
	}
	return stages
}

func lookupStage(collection, path string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: collection},
		{Key: "localField", Value: path},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: path},
	}}}
}

// unwindStage keeps documents whose field is missing, null or empty
func unwindStage(path string) bson.D {
	return bson.D{{Key: "$unwind", Value: bson.D{
		{Key: "path", Value: "$" + path},
		{Key: "preserveNullAndEmptyArrays", Value: true},
	}}}
}

// restoreStage puts back the pre-lookup value when the lookup left nothing
func restoreStage(j join) bson.D {
	return bson.D{{Key: "$addFields", Value: bson.D{
		{Key: j.path, Value: bson.D{{Key: "$cond", Value: bson.D{
			{Key: "if", Value: bson.D{{Key: "$not", Value: bson.A{"$" + j.scratch}}}},
			{Key: "then", Value: "$" + j.scratch},
			{Key: "else", Value: "$" + j.path},
		}}}},
	}}}
}

// groupStage rebuilds one document per _id, pushing arrayField back into an
// array and keeping the first value of every other declared field.
func groupStage(model types.Model, arrayField string) bson.D {
	group := bson.D{{Key: "_id", Value: "$_id"}}
	for _, name := range model.FieldNames() {
		op := "$first"
		if name == arrayField {
			op = "$push"
		}
		group = append(group, bson.E{Key: name, Value: bson.D{{Key: op, Value: "$" + name}}})
	}
	return bson.D{{Key: "$group", Value: group}}
}
