package ganzhi

// The sixty pairs fall into six decades, each opened by a 甲 stem. A decade
// covers ten branches, so two branches of the twelve never appear in it and
// are void for every day in that decade.
var decadeVoid = map[Branch][2]Branch{
	BranchZi:   {BranchXu, BranchHai},
	BranchXu:   {BranchShen, BranchYou},
	BranchShen: {BranchWu, BranchWei},
	BranchWu:   {BranchChen, BranchSi},
	BranchChen: {BranchYin, BranchMao},
	BranchYin:  {BranchZi, BranchChou},
}

// DecadeAnchor returns the 甲 pair that opens the decade containing p.
// The second result is false when p is not one of the sixty cyclic pairs.
func DecadeAnchor(p Pair) (Pair, bool) {
	if !p.Cyclic() {
		return Pair{}, false
	}
	anchor := BranchAt(p.Branch.Index() - p.Stem.Index())
	return Pair{Stem: StemJia, Branch: anchor}, true
}

// EmptyBranches returns the two void branches for the decade of p.
//
// Pairs of mismatched parity never occur in the sixty cycle; they resolve to
// no decade and therefore to no void branches.
func EmptyBranches(p Pair) []Branch {
	anchor, ok := DecadeAnchor(p)
	if !ok {
		return nil
	}
	void, ok := decadeVoid[anchor.Branch]
	if !ok {
		return nil
	}
	return []Branch{void[0], void[1]}
}

// IsVoid reports whether b is void for the decade of day.
func IsVoid(day Pair, b Branch) bool {
	for _, candidate := range EmptyBranches(day) {
		if candidate == b {
			return true
		}
	}
	return false
}
