package rulebook

// MaxLevel is the highest level the progression table covers.
const MaxLevel = 10

// xpThresholds maps a level to the total XP required to reach it.
var xpThresholds = map[int32]int32{
	1:  0,
	2:  300,
	3:  900,
	4:  2700,
	5:  6500,
	6:  14000,
	7:  23000,
	8:  34000,
	9:  48000,
	10: 64000,
}

// XPThreshold returns the total XP required to reach the given level and
// whether the level exists in the progression table.
func XPThreshold(level int32) (int32, bool) {
	xp, ok := xpThresholds[level]
	return xp, ok
}

// XPCap returns the XP target displayed for a character at the given level.
// Past the top of the table there is no next threshold, so a sentinel cap
// is returned instead.
func XPCap(level int32) int32 {
	if xp, ok := xpThresholds[level+1]; ok {
		return xp
	}
	return 999999
}
