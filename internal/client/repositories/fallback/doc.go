// Package fallback is the local key/value blob store used for collections
// that are not served by the remote store. Each collection keeps its records
// as one JSON array under a key equal to the collection name.
//
// Two drivers implement Repository: SQLite (modernc.org/sqlite with goose
// migrations) and Bolt (github.com/boltdb/bolt). Open picks one by name.
//
// Get returns (nil, nil) for a missing key.
package fallback
