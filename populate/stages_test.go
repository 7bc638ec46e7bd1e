package populate

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func addFields(field string, value any) bson.D {
	return bson.D{{Key: "$addFields", Value: bson.D{{Key: field, Value: value}}}}
}

func lookup(from, path string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: path},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: path},
	}}}
}

func unwind(path string) bson.D {
	return bson.D{{Key: "$unwind", Value: bson.D{
		{Key: "path", Value: "$" + path},
		{Key: "preserveNullAndEmptyArrays", Value: true},
	}}}
}

func restore(path, scratch string) bson.D {
	return addFields(path, bson.D{{Key: "$cond", Value: bson.D{
		{Key: "if", Value: bson.D{{Key: "$not", Value: bson.A{"$" + scratch}}}},
		{Key: "then", Value: "$" + scratch},
		{Key: "else", Value: "$" + path},
	}}})
}

func compile(t *testing.T, paths ...string) mongo.Pipeline {
	t.Helper()
	reg := newTestRegistry(t)
	pipeline, err := Pipeline(reg, mustModel(t, reg, "Team"), paths)
	require.NoError(t, err)
	return pipeline
}

func TestPipeline_SingleReference(t *testing.T) {
	expected := mongo.Pipeline{
		addFields("_populate_tmp_0", "$leader"),
		lookup("players", "leader"),
		unwind("leader"),
		restore("leader", "_populate_tmp_0"),
		{{Key: "$unset", Value: bson.A{"_populate_tmp_0"}}},
	}

	if diff := cmp.Diff(expected, compile(t, "leader")); diff != "" {
		t.Errorf("pipeline mismatch (-want +got):\n%s", diff)
	}
}

func TestPipeline_NestedReference(t *testing.T) {
	expected := mongo.Pipeline{
		addFields("_populate_tmp_0", "$leader"),
		lookup("players", "leader"),
		unwind("leader"),
		addFields("_populate_tmp_1", "$leader.studiedAt"),
		lookup("schools", "leader.studiedAt"),
		unwind("leader.studiedAt"),
		restore("leader.studiedAt", "_populate_tmp_1"),
		restore("leader", "_populate_tmp_0"),
		{{Key: "$unset", Value: bson.A{"_populate_tmp_0", "_populate_tmp_1"}}},
	}

	if diff := cmp.Diff(expected, compile(t, "leader.studiedAt")); diff != "" {
		t.Errorf("pipeline mismatch (-want +got):\n%s", diff)
	}
}

func TestPipeline_ArrayRoot(t *testing.T) {
	group := bson.D{
		{Key: "_id", Value: "$_id"},
		{Key: "name", Value: bson.D{{Key: "$first", Value: "$name"}}},
		{Key: "championships", Value: bson.D{{Key: "$first", Value: "$championships"}}},
		{Key: "leader", Value: bson.D{{Key: "$first", Value: "$leader"}}},
		{Key: "members", Value: bson.D{{Key: "$push", Value: "$members"}}},
		{Key: "allMembers", Value: bson.D{{Key: "$first", Value: "$allMembers"}}},
		{Key: "represents", Value: bson.D{{Key: "$first", Value: "$represents"}}},
	}
	expected := mongo.Pipeline{
		unwind("members"),
		addFields("_populate_tmp_0", "$members"),
		lookup("players", "members"),
		unwind("members"),
		restore("members", "_populate_tmp_0"),
		{{Key: "$group", Value: group}},
	}

	if diff := cmp.Diff(expected, compile(t, "members")); diff != "" {
		t.Errorf("pipeline mismatch (-want +got):\n%s", diff)
	}
}

func TestPipeline_ScratchNamesUniqueAcrossTrees(t *testing.T) {
	pipeline := compile(t, "leader.studiedAt", "represents", "members.studiedAt")

	seen := map[string]bool{}
	for _, stage := range pipeline {
		if stage[0].Key != "$addFields" {
			continue
		}
		fields := stage[0].Value.(bson.D)
		if strings.HasPrefix(fields[0].Key, ScratchPrefix) {
			assert.False(t, seen[fields[0].Key], "scratch %s reused", fields[0].Key)
			seen[fields[0].Key] = true
		}
	}
	assert.Len(t, seen, 5)
}

func TestPipeline_SharedPrefixJoinsOnce(t *testing.T) {
	pipeline := compile(t, "leader.studiedAt", "leader.name", "leader")

	lookups := 0
	for _, stage := range pipeline {
		if stage[0].Key == "$lookup" {
			lookups++
		}
	}
	assert.Equal(t, 2, lookups)
}

func TestPipeline_OrderOfPathsDoesNotChangeShape(t *testing.T) {
	a := compile(t, "leader.studiedAt", "represents")
	b := compile(t, "represents", "leader.studiedAt")
	assert.Equal(t, len(a), len(b))
}

func TestPipeline_NoPaths(t *testing.T) {
	pipeline := compile(t)
	assert.NotNil(t, pipeline)
	assert.Empty(t, pipeline)
}

func TestPipeline_NonReferenceLeaf(t *testing.T) {
	assert.Empty(t, compile(t, "name"), "a plain field needs no join")
}

func TestPipeline_Errors(t *testing.T) {
	reg := newTestRegistry(t)
	team := mustModel(t, reg, "Team")

	tests := []struct {
		name  string
		paths []string
		kind  error
	}{
		{"unknown field", []string{"coach"}, ErrPathNotFound},
		{"unknown nested field", []string{"leader", "leader.shoeSize"}, ErrPathNotFound},
		{"deep array", []string{"leader.teams"}, ErrUnsupportedDepth},
		{"deep array after valid tree", []string{"represents", "leader.teams"}, ErrUnsupportedDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline, err := Pipeline(reg, team, tt.paths)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind))
			assert.Nil(t, pipeline)
		})
	}
}

func TestCompiler_ContinuesNumbering(t *testing.T) {
	reg := newTestRegistry(t)
	team := mustModel(t, reg, "Team")
	forest, err := Build(reg, team, []string{"leader", "represents"})
	require.NoError(t, err)

	c := NewCompiler()
	trees := forest.Trees()
	first := c.Stages(team, trees[0])
	second := c.Stages(team, trees[1])

	assert.Equal(t, addFields("_populate_tmp_0", "$leader"), first[0])
	assert.Equal(t, addFields("_populate_tmp_1", "$represents"), second[0])
}

func compileProject(t *testing.T, paths ...string) mongo.Pipeline {
	t.Helper()
	reg := newTestRegistry(t)
	pipeline, err := Pipeline(reg, mustModel(t, reg, "Project"), paths)
	require.NoError(t, err)
	return pipeline
}

func TestPipeline_EmbeddedArrayRoot(t *testing.T) {
	group := bson.D{
		{Key: "_id", Value: "$_id"},
		{Key: "name", Value: bson.D{{Key: "$first", Value: "$name"}}},
		{Key: "contacts", Value: bson.D{{Key: "$push", Value: "$contacts"}}},
		{Key: "sponsor", Value: bson.D{{Key: "$first", Value: "$sponsor"}}},
	}
	expected := mongo.Pipeline{
		unwind("contacts"),
		addFields("_populate_tmp_0", "$contacts.contact"),
		lookup("players", "contacts.contact"),
		unwind("contacts.contact"),
		restore("contacts.contact", "_populate_tmp_0"),
		{{Key: "$group", Value: group}},
	}

	if diff := cmp.Diff(expected, compileProject(t, "contacts.contact")); diff != "" {
		t.Errorf("pipeline mismatch (-want +got):\n%s", diff)
	}
}

func TestPipeline_EmbeddedDocument(t *testing.T) {
	expected := mongo.Pipeline{
		addFields("_populate_tmp_0", "$sponsor.owner"),
		lookup("players", "sponsor.owner"),
		unwind("sponsor.owner"),
		addFields("_populate_tmp_1", "$sponsor.owner.studiedAt"),
		lookup("schools", "sponsor.owner.studiedAt"),
		unwind("sponsor.owner.studiedAt"),
		restore("sponsor.owner.studiedAt", "_populate_tmp_1"),
		restore("sponsor.owner", "_populate_tmp_0"),
		{{Key: "$unset", Value: bson.A{"_populate_tmp_0", "_populate_tmp_1"}}},
	}

	if diff := cmp.Diff(expected, compileProject(t, "sponsor.owner.studiedAt")); diff != "" {
		t.Errorf("pipeline mismatch (-want +got):\n%s", diff)
	}
}

func TestPipeline_EmbeddedWithoutJoin(t *testing.T) {
	assert.Empty(t, compileProject(t, "sponsor.company"), "a plain subdocument field needs no join")
}
