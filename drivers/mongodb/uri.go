package mongodb

import (
	"fmt"
	"net/url"

	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// SupportedSchemes are the URI schemes a MongoDB connection string may use
var SupportedSchemes = []string{"mongodb", "mongodb+srv"}

// ParseURI validates a MongoDB connection string and returns it together
// with the name of the database it selects.
func ParseURI(uri string) (*connstring.ConnString, error) {
	parsedURI, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid URI format: %w", err)
	}
	if !isValidScheme(parsedURI.Scheme) {
		return nil, fmt.Errorf("unsupported scheme: %s", parsedURI.Scheme)
	}
	if parsedURI.Host == "" {
		return nil, fmt.Errorf("host is required in MongoDB URI")
	}

	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if cs.Database == "" {
		return nil, fmt.Errorf("database name is required in MongoDB URI")
	}
	return cs, nil
}

func isValidScheme(scheme string) bool {
	for _, s := range SupportedSchemes {
		if s == scheme {
			return true
		}
	}
	return false
}
