package job

import (
	"fmt"
	"hash/fnv"
)

// ShardLabel hashes a collection name to a stable small cardinality label (0-31).
func ShardLabel(collection string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(collection))
	return fmt.Sprintf("%d", h.Sum32()%32)
}
