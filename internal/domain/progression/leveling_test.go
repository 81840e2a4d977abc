package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelForXP_Thresholds(t *testing.T) {
	tests := []struct {
		name  string
		xp    int
		level int
	}{
		{"zero xp", 0, 1},
		{"just below level 2", 99, 1},
		{"exactly level 2", 100, 2},
		{"level-up purchase", 160, 2},
		{"just below level 3", 299, 2},
		{"exactly level 3", 300, 3},
		{"just below level 4", 549, 3},
		{"exactly level 4", 550, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.level, LevelForXP(tt.xp))
		})
	}
}

func TestLevelForXP_Monotonic(t *testing.T) {
	prev := LevelForXP(0)
	require.GreaterOrEqual(t, prev, 1)

	for xp := 1; xp <= 20000; xp++ {
		level := LevelForXP(xp)
		require.GreaterOrEqual(t, level, prev, "level dropped at xp=%d", xp)
		prev = level
	}
}

func TestLevelForXP_ReachesAdvertisedLevels(t *testing.T) {
	for level := 1; level <= 50; level++ {
		total := TotalXPForLevel(level)
		assert.GreaterOrEqual(t, LevelForXP(total), level,
			"level %d not reached at its advertised cumulative XP", level)
	}
}

func TestXPForNextLevel(t *testing.T) {
	assert.Equal(t, 150, XPForNextLevel(1))
	assert.Equal(t, 200, XPForNextLevel(2))
	assert.Equal(t, 600, XPForNextLevel(10))
}
