package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/rediwo/mongo-join/test"
	"github.com/stretchr/testify/require"
)

// connectTimeout bounds server selection so tests skip quickly when no
// server is running
const connectTimeout = 2 * time.Second

func init() {
	test.RegisterTestDatabaseUri("mongodb", test.MongoDBTestURI())
}

// connectTestDB connects to the registered test database or skips the test
func connectTestDB(t *testing.T) *MongoDB {
	t.Helper()
	test.SkipIfShort(t)

	db, err := NewMongoDB(test.GetTestDatabaseUri("mongodb"))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
