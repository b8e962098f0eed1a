// internal/engine/budget/guidance_test.go
package budget

import (
	"testing"

	"planora-workers/internal/common/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfig(t *testing.T) {
	cfg := config.GuidanceConfig{
		EventTypes: map[string]config.EventTypeGuidance{
			"birthday": {
				BudgetMin:         20000,
				BudgetMax:         80000,
				SuggestedServices: []string{"catering", "decor"},
				Distribution: []config.AllocationConfig{
					{Category: "Catering", Percent: 50},
					{Category: "Decor", Percent: 50},
				},
			},
		},
	}

	guide := FromConfig(cfg)

	entry := guide.Lookup("birthday")
	require.NotNil(t, entry)
	assert.Equal(t, Range{Min: 20000, Max: 80000}, entry.Budget)
	assert.Equal(t, []string{"catering", "decor"}, entry.SuggestedServices)
	require.Len(t, entry.Distribution, 2)
	assert.Equal(t, "Catering", entry.Distribution[0].Category)

	assert.Nil(t, guide.Lookup("wedding"))
}
