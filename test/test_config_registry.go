package test

import (
	"fmt"
	"sync"
)

// testDatabaseURIRegistry holds the test database URI of each store
var (
	testDatabaseURIRegistry = make(map[string]string)
	registryMutex           sync.RWMutex
)

// RegisterTestDatabaseUri registers the test database URI for a store
func RegisterTestDatabaseUri(store string, uri string) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	testDatabaseURIRegistry[store] = uri
}

// LookupTestDatabaseUri returns the registered URI of a store, if any
func LookupTestDatabaseUri(store string) (string, bool) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	uri, ok := testDatabaseURIRegistry[store]
	return uri, ok
}

// GetTestDatabaseUri returns the test database URI of a store and panics
// when none was registered
func GetTestDatabaseUri(store string) string {
	uri, ok := LookupTestDatabaseUri(store)
	if !ok {
		panic(fmt.Sprintf("no test database URI registered for store: %s", store))
	}
	return uri
}
