package populate

import (
	"testing"

	"github.com/rediwo/mongo-join/schema"
	"github.com/rediwo/mongo-join/types"
	"github.com/stretchr/testify/require"
)

// newTestRegistry returns schools, players, teams and projects. Players also
// carry an array of teams so deep arrays can be exercised; projects embed
// subdocuments holding references.
func newTestRegistry(t *testing.T) *schema.Registry {
	t.Helper()

	school := schema.New("School").
		AddField(schema.NewField("name").String().Build()).
		AddField(schema.NewField("yearFounded").Int().Build())

	player := schema.New("Player").
		AddField(schema.NewField("name").String().Build()).
		AddField(schema.NewField("age").Int().Build()).
		AddField(schema.NewField("nicknames").Type(schema.FieldTypeStringArray).Build()).
		AddReference("studiedAt", "School", false).
		AddReference("teams", "Team", true)

	team := schema.New("Team").
		AddField(schema.NewField("name").String().Build()).
		AddField(schema.NewField("championships").Int().Build()).
		AddReference("leader", "Player", false).
		AddReference("members", "Player", true).
		AddReference("allMembers", "Player", true).
		AddReference("represents", "School", false)

	contact := schema.NewEmbedded("Project.contacts").
		AddField(schema.NewField("role").String().Build()).
		AddReference("contact", "Player", false)

	sponsor := schema.NewEmbedded("Project.sponsor").
		AddField(schema.NewField("company").String().Build()).
		AddReference("owner", "Player", false)

	project := schema.New("Project").
		AddField(schema.NewField("name").String().Build()).
		AddField(schema.NewField("contacts").DocumentArray().Embed(contact).Build()).
		AddField(schema.NewField("sponsor").Embed(sponsor).Build())

	reg := schema.NewRegistry()
	require.NoError(t, reg.Register(school, player, team, project))
	require.NoError(t, reg.Validate())
	return reg
}

func mustModel(t *testing.T, reg types.SchemaRegistry, name string) types.Model {
	t.Helper()
	m, err := reg.Model(name)
	require.NoError(t, err)
	return m
}

func mustBuild(t *testing.T, paths ...string) *Forest {
	t.Helper()
	reg := newTestRegistry(t)
	forest, err := Build(reg, mustModel(t, reg, "Team"), paths)
	require.NoError(t, err)
	return forest
}
