package memory_test

import (
	"testing"

	"github.com/covetools/cove/pkg/adapters/memory"
	"github.com/covetools/cove/pkg/ports"
)

func TestMemoryCache_Contract(t *testing.T) {
	cache := memory.NewCache()
	ports.RunResultCacheContract(t, cache)
}
