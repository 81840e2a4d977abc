// Package progression holds the pure leveling arithmetic shared by every
// ledger mutation.
package progression

// LevelForXP maps cumulative XP to a level. Levels start at 1; the first
// advancement costs 100 XP and each later step from level L costs
// 100 + L*50, with thresholds accumulating. The function is total for all
// xp >= 0 and monotonic non-decreasing in xp.
func LevelForXP(xp int) int {
	level := 1
	needed := 100
	total := 0

	for xp >= total+needed {
		total += needed
		level++
		needed = 100 + level*50
	}

	return level
}

// XPForNextLevel returns the marginal XP advertised for advancing past the
// given level.
func XPForNextLevel(level int) int {
	return 100 + level*50
}

// TotalXPForLevel returns the advertised cumulative XP for holding the given
// level. Paired with LevelForXP it is conservative: LevelForXP of the result
// always reaches at least the requested level.
func TotalXPForLevel(level int) int {
	total := 0
	for l := 1; l < level; l++ {
		total += XPForNextLevel(l)
	}

	return total
}
