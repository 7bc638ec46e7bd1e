package test

import (
	"os"
	"testing"
)

// GetEnvOrDefault returns the environment variable key, or defaultValue when
// it is unset or empty
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// MongoDBTestURI builds the test MongoDB URI from MONGODB_TEST_* variables.
// MONGODB_TEST_URI, when set, wins over the individual parts.
func MongoDBTestURI() string {
	if uri := os.Getenv("MONGODB_TEST_URI"); uri != "" {
		return uri
	}

	host := GetEnvOrDefault("MONGODB_TEST_HOST", "localhost")
	port := GetEnvOrDefault("MONGODB_TEST_PORT", "27017")
	user := GetEnvOrDefault("MONGODB_TEST_USER", "testuser")
	password := GetEnvOrDefault("MONGODB_TEST_PASSWORD", "testpass")
	database := GetEnvOrDefault("MONGODB_TEST_DATABASE", "testdb")

	return "mongodb://" + user + ":" + password + "@" + host + ":" + port + "/" + database + "?authSource=admin"
}

// SkipIfShort skips database tests in -short mode
func SkipIfShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}
}
