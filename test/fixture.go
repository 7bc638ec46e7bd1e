package test

import (
	"context"
	"fmt"

	"github.com/rediwo/mongo-join/schema"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewTeamRegistry returns the School, Player and Team models used across
// the test suites. Players study at a school; teams have a leader, two
// arrays of players and the school they represent.
func NewTeamRegistry() (*schema.Registry, error) {
	school := schema.New("School").
		AddField(schema.NewField("name").String().Build()).
		AddField(schema.NewField("yearFounded").Int().Build())

	player := schema.New("Player").
		AddField(schema.NewField("name").String().Build()).
		AddField(schema.NewField("age").Int().Build()).
		AddReference("studiedAt", "School", false)

	team := schema.New("Team").
		AddField(schema.NewField("name").String().Build()).
		AddField(schema.NewField("championships").Int().Build()).
		AddReference("leader", "Player", false).
		AddReference("members", "Player", true).
		AddReference("allMembers", "Player", true).
		AddReference("represents", "School", false)

	reg := schema.NewRegistry()
	if err := reg.Register(school, player, team); err != nil {
		return nil, err
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

// Fixture is three schools, three players and three teams referencing them
type Fixture struct {
	Schools []bson.M
	Players []bson.M
	Teams   []bson.M
}

// NewFixture builds the fixture documents with fresh object ids.
//
// Schools were founded in 1950, 1960 and 1970. Player i is 25+i years old and
// studied at school i. Team i has championship count i+1, is led by player i,
// represents school i, has the two other players as members and all three
// players as allMembers.
func NewFixture() *Fixture {
	f := &Fixture{}

	for i := 0; i < 3; i++ {
		f.Schools = append(f.Schools, bson.M{
			"_id":         primitive.NewObjectID(),
			"name":        fmt.Sprintf("School %d", i+1),
			"yearFounded": 1950 + 10*i,
		})
	}

	for i := 0; i < 3; i++ {
		f.Players = append(f.Players, bson.M{
			"_id":       primitive.NewObjectID(),
			"name":      fmt.Sprintf("Player %d", i+1),
			"age":       25 + i,
			"studiedAt": f.Schools[i]["_id"],
		})
	}

	all := bson.A{f.PlayerID(0), f.PlayerID(1), f.PlayerID(2)}
	for i := 0; i < 3; i++ {
		members := bson.A{}
		for j := 0; j < 3; j++ {
			if j != i {
				members = append(members, f.PlayerID(j))
			}
		}
		f.Teams = append(f.Teams, bson.M{
			"_id":           primitive.NewObjectID(),
			"name":          fmt.Sprintf("team %d", i+1),
			"championships": i + 1,
			"leader":        f.PlayerID(i),
			"members":       members,
			"allMembers":    all,
			"represents":    f.Schools[i]["_id"],
		})
	}
	return f
}

// SchoolID returns the id of school i
func (f *Fixture) SchoolID(i int) primitive.ObjectID {
	return f.Schools[i]["_id"].(primitive.ObjectID)
}

// PlayerID returns the id of player i
func (f *Fixture) PlayerID(i int) primitive.ObjectID {
	return f.Players[i]["_id"].(primitive.ObjectID)
}

// TeamID returns the id of team i
func (f *Fixture) TeamID(i int) primitive.ObjectID {
	return f.Teams[i]["_id"].(primitive.ObjectID)
}

// Seeder is the part of a store needed to load a fixture
type Seeder interface {
	DropCollection(ctx context.Context, collection string) error
	InsertMany(ctx context.Context, collection string, documents []any) ([]any, error)
}

// Seed replaces the schools, players and teams collections with the
// fixture documents
func (f *Fixture) Seed(ctx context.Context, s Seeder) error {
	collections := []struct {
		name string
		docs []bson.M
	}{
		{"schools", f.Schools},
		{"players", f.Players},
		{"teams", f.Teams},
	}

	for _, c := range collections {
		if err := s.DropCollection(ctx, c.name); err != nil {
			return fmt.Errorf("failed to reset %s: %w", c.name, err)
		}
		docs := make([]any, len(c.docs))
		for i, d := range c.docs {
			docs[i] = d
		}
		if _, err := s.InsertMany(ctx, c.name, docs); err != nil {
			return fmt.Errorf("failed to seed %s: %w", c.name, err)
		}
	}
	return nil
}
