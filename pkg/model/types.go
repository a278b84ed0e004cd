package model

import "sort"

// DomainHit is one annotated stretch of a protein. It comes either from the
// domain-scan report (Label = family name, EValue as reported) or is
// synthesized from the topology prediction (Label = Sig_Pep / TMD_o2i /
// TMD_i2o, EValue = 0, always significant).
type DomainHit struct {
	Label  string
	EValue float64
	Start  int // 1-based, inclusive
	End    int // 1-based, inclusive
}

// HitTable is the per-protein working list carried through the pipeline.
// Each stage mutates the slices in place; only the post-sort order of a
// slice means anything.
type HitTable map[string][]DomainHit

// Classification is one output row of the RLK or RLP table.
type Classification struct {
	Protein string
	Class   string
	ECD     string // ECD_NONE when there is no extracellular domain
	KDCount int    // kinase-domain count, unused in the RLP flow
}

// Proteins returns the table's keys in lexical order, so that output tables
// come out the same across runs.
func (t HitTable) Proteins() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
