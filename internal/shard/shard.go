// Package shard provides shard key generation for the relationship table.
package shard

import (
	"fmt"
	"hash/fnv"
)

// RelationshipPK computes the sharded partition key for a relationship row
// linking a parent to a child under a named relationship.
// With numShards=1, all rows of one relationship go to shard "00".
// With numShards>1, rows are distributed across shards by childRef hash.
func RelationshipPK(parentRef, relationship, childRef string, numShards int) string {
	if numShards <= 1 {
		return fmt.Sprintf("%s#%s#00", parentRef, relationship)
	}
	h := fnv.New32a()
	h.Write([]byte(childRef))
	shard := h.Sum32() % uint32(numShards)
	return fmt.Sprintf("%s#%s#%02x", parentRef, relationship, shard)
}

// ShardPKs returns every partition key a relationship's rows can live under.
// Readers fan out across these when scanning a relationship.
func ShardPKs(parentRef, relationship string, numShards int) []string {
	if numShards <= 1 {
		return []string{fmt.Sprintf("%s#%s#00", parentRef, relationship)}
	}
	pks := make([]string, numShards)
	for i := 0; i < numShards; i++ {
		pks[i] = fmt.Sprintf("%s#%s#%02x", parentRef, relationship, i)
	}
	return pks
}
