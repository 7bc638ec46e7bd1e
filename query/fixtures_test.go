package query

import (
	"context"
	"testing"

	"github.com/rediwo/mongo-join/schema"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func newTestRegistry(t *testing.T) *schema.Registry {
	t.Helper()

	school := schema.New("School").
		AddField(schema.NewField("name").String().Build()).
		AddField(schema.NewField("yearFounded").Int().Build())

	player := schema.New("Player").
		AddField(schema.NewField("name").String().Build()).
		AddField(schema.NewField("age").Int().Build()).
		AddReference("studiedAt", "School", false)

	team := schema.New("Team").
		AddField(schema.NewField("name").String().Build()).
		AddReference("leader", "Player", false).
		AddReference("members", "Player", true)

	reg := schema.NewRegistry()
	require.NoError(t, reg.Register(school, player, team))
	return reg
}

type aggregateCall struct {
	collection string
	pipeline   mongo.Pipeline
}

// fakeStore records every Aggregate call and answers with a canned envelope
type fakeStore struct {
	calls []aggregateCall
	docs  []bson.M
	err   error
}

func (s *fakeStore) Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline) ([]bson.M, error) {
	s.calls = append(s.calls, aggregateCall{collection: collection, pipeline: pipeline})
	if s.err != nil {
		return nil, s.err
	}
	return s.docs, nil
}

type formattingStore struct {
	fakeStore
}

func (s *formattingStore) FormatPipeline(collection string, pipeline mongo.Pipeline) string {
	return "formatted " + collection
}
