// Package mongodb is the MongoDB store behind population queries: it owns
// the client connection and runs aggregation pipelines in one round trip.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/rediwo/mongo-join/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB is a store bound to the database named in its URI
type MongoDB struct {
	client    *mongo.Client
	nativeURI string
	dbName    string
	logger    logger.Logger
}

// NewMongoDB creates a MongoDB store. The uri must be a mongodb:// or
// mongodb+srv:// connection string that names a database. No connection is
// made until Connect.
func NewMongoDB(nativeURI string) (*MongoDB, error) {
	cs, err := ParseURI(nativeURI)
	if err != nil {
		return nil, err
	}
	return &MongoDB{
		nativeURI: nativeURI,
		dbName:    cs.Database,
	}, nil
}

// SetLogger sets the logger for executed commands; nil means the global logger
func (m *MongoDB) SetLogger(l logger.Logger) {
	m.logger = l
}

// GetLogger returns the logger commands are written to
func (m *MongoDB) GetLogger() logger.Logger {
	return logger.Or(m.logger)
}

// DatabaseName returns the database selected by the URI
func (m *MongoDB) DatabaseName() string {
	return m.dbName
}

// Connect establishes the connection and verifies it with a ping
func (m *MongoDB) Connect(ctx context.Context) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.nativeURI))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	m.client = client
	return nil
}

// Close closes the MongoDB connection
func (m *MongoDB) Close() error {
	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(context.Background())
	m.client = nil
	return err
}

// Ping checks if the database is reachable
func (m *MongoDB) Ping(ctx context.Context) error {
	if m.client == nil {
		return fmt.Errorf("not connected to MongoDB")
	}
	return m.client.Ping(ctx, nil)
}

// Collection returns a handle on a collection of the database
func (m *MongoDB) Collection(name string) (*mongo.Collection, error) {
	if m.client == nil {
		return nil, fmt.Errorf("not connected to MongoDB")
	}
	return m.client.Database(m.dbName).Collection(name), nil
}

// Aggregate runs pipeline on collection and decodes every resulting document
func (m *MongoDB) Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline) ([]bson.M, error) {
	coll, err := m.Collection(collection)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer m.logCommand(&Command{Operation: "aggregate", Collection: collection, Pipeline: pipeline}, start)

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to execute aggregate: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode aggregate results: %w", err)
	}
	return docs, nil
}

// InsertMany inserts documents into collection and returns their ids
func (m *MongoDB) InsertMany(ctx context.Context, collection string, documents []any) ([]any, error) {
	coll, err := m.Collection(collection)
	if err != nil {
		return nil, err
	}
	if len(documents) == 0 {
		return nil, nil
	}

	start := time.Now()
	defer m.logCommand(&Command{Operation: "insert", Collection: collection, Documents: documents}, start)

	result, err := coll.InsertMany(ctx, documents)
	if err != nil {
		return nil, fmt.Errorf("failed to insert documents: %w", err)
	}
	return result.InsertedIDs, nil
}

// DropCollection drops collection; dropping a missing collection succeeds
func (m *MongoDB) DropCollection(ctx context.Context, collection string) error {
	coll, err := m.Collection(collection)
	if err != nil {
		return err
	}

	start := time.Now()
	defer m.logCommand(&Command{Operation: "drop", Collection: collection}, start)

	if err := coll.Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop collection: %w", err)
	}
	return nil
}

// FormatPipeline renders an aggregate command the way it is logged
func (m *MongoDB) FormatPipeline(collection string, pipeline mongo.Pipeline) string {
	cmd := &Command{Operation: "aggregate", Collection: collection, Pipeline: pipeline}
	cmdJSON, err := cmd.ToJSON()
	if err != nil {
		return fmt.Sprintf("%v", pipeline)
	}
	return cmdJSON
}

func (m *MongoDB) logCommand(cmd *Command, start time.Time) {
	log := m.GetLogger()
	if log.GetLevel() < logger.LogLevelDebug {
		return
	}
	cmdJSON, err := cmd.ToJSON()
	if err != nil {
		log.Warn("MongoDB %s - failed to render command: %v", cmd.Operation, err)
		return
	}
	log.LogCommand(cmdJSON, time.Since(start))
}
