package dynamostore

// Config holds configuration for the Store.
type Config struct {
	// RelationshipTable is the name of the many-to-many link table.
	// Default: "lazarus_relationships"
	RelationshipTable string

	// NumShards is the number of shards for the relationship table.
	// Higher values increase write throughput but require more parallel
	// queries when a cascade scans a relationship.
	// Default: 1 (no sharding, single query)
	// Max: 256
	NumShards int
}

// DefaultConfig returns sensible defaults for small datasets.
func DefaultConfig() Config {
	return Config{
		RelationshipTable: "lazarus_relationships",
		NumShards:         1,
	}
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	if c.RelationshipTable == "" {
		c.RelationshipTable = "lazarus_relationships"
	}
	if c.NumShards < 1 {
		c.NumShards = 1
	}
	if c.NumShards > 256 {
		c.NumShards = 256
	}
}
