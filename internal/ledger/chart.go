package ledger

import (
	"context"
	"sync"
)

// ChartPort resolves account names to their classification.
type ChartPort interface {
	AccountTypes(ctx context.Context) (map[string]AccountType, error)
	SetAccountType(ctx context.Context, account string, accType AccountType) error
}

// MemoryChart keeps the chart of accounts in memory.
type MemoryChart struct {
	mu    sync.RWMutex
	types map[string]AccountType
}

// NewMemoryChart constructs a chart seeded with the given classifications.
func NewMemoryChart(types map[string]AccountType) *MemoryChart {
	chart := &MemoryChart{types: make(map[string]AccountType, len(types))}
	for account, accType := range types {
		chart.types[account] = accType
	}
	return chart
}

// AccountTypes returns a copy of the classification table.
func (c *MemoryChart) AccountTypes(ctx context.Context) (map[string]AccountType, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]AccountType, len(c.types))
	for account, accType := range c.types {
		out[account] = accType
	}
	return out, nil
}

// SetAccountType classifies or reclassifies an account.
func (c *MemoryChart) SetAccountType(ctx context.Context, account string, accType AccountType) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.types[account] = accType
	return nil
}
