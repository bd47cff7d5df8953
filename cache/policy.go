package cache

// A ReplacementPolicy maintains the recency ranks of one set and decides
// which way should be evicted. Rank 0 is the most-recently-used way;
// larger ranks are older. The policy itself is stateless; all state lives
// in the rank slice owned by the model.
type ReplacementPolicy interface {
	// Touch promotes way to rank 0 after an access.
	Touch(ranks []int, way int)

	// Victim returns the way that should be evicted.
	Victim(ranks []int) int
}

// RankPolicy approximates LRU with bounded priority ranks. An access
// pushes every way ranked at-or-above the touched way one step older,
// saturating at len(ranks)-1, then moves the touched way to rank 0. The
// update is O(ways) per access and deliberately weaker than a true
// recency stack: ranks can tie once the ceiling is reached.
type RankPolicy struct {
}

// NewRankPolicy returns a newly constructed rank policy.
func NewRankPolicy() *RankPolicy {
	p := new(RankPolicy)
	return p
}

// Touch ages every way whose rank is at or below the touched way's rank,
// clamped at the ceiling, and then makes the touched way rank 0.
func (p *RankPolicy) Touch(ranks []int, way int) {
	ceiling := len(ranks) - 1
	touched := ranks[way]

	for i, r := range ranks {
		if r <= touched && r < ceiling {
			ranks[i] = r + 1
		}
	}

	ranks[way] = 0
}

// Victim returns the way with the numerically largest rank. The scan
// keeps the first maximum, so ties break to the lowest way index.
func (p *RankPolicy) Victim(ranks []int) int {
	victim := 0
	for i, r := range ranks {
		if r > ranks[victim] {
			victim = i
		}
	}

	return victim
}
