package model

import "strings"

// RelabelKinases rewrites every hit whose label is in families: Kinase when
// its e-value passes the strict cutoff, Fake_kinase otherwise. Fake kinases
// stay in the list (they still claim territory downstream) but never count.
// Returns the number of true Kinase hits.
func RelabelKinases(hits []DomainHit, families map[string]bool) int {
	count := 0
	for i := range hits {
		if !families[hits[i].Label] {
			continue
		}
		if hits[i].EValue <= KINASE_EVALUE_CUTOFF {
			hits[i].Label = KINASE
			count++
		} else {
			hits[i].Label = FAKE_KINASE
		}
	}
	return count
}

// ClassifyRLK assigns one of RLK / RLK_WE / RLK_RvrTMD / Others from the
// ordered label sequence. The caller must have relabeled kinase-family hits
// already. The rules mirror the receptor-kinase architecture patterns:
//
//	prefix TMD_o2i ... Kinase   -> RLK (ECD from prefix), RLK_WE when the ECD strips away
//	TMD_i2o anywhere (no match) -> RLK_RvrTMD
//	TMD_o2i ... Kinase at start -> RLK_WE
//	anything else               -> Others
//
// When several TMD_o2i segments have a kinase downstream, the match anchors
// on the last one, like the greedy pattern it replaces.
func ClassifyRLK(protein string, hits []DomainHit) Classification {
	labels := labelsOf(hits)

	c := Classification{
		Protein: protein,
		Class:   CLASS_OTHERS,
		ECD:     ECD_NONE,
		KDCount: countLabel(labels, KINASE),
	}

	if !hasTMD(labels) {
		return c
	}

	// Main pattern needs at least one label before the crossing.
	for i := len(labels) - 1; i >= 1; i-- {
		if labels[i] != TMD_O2I || !containsLabel(labels[i+1:], KINASE) {
			continue
		}
		ecd := ecdFrom(labels[:i])
		if ecd == "" {
			c.Class = CLASS_RLK_WE
		} else {
			c.Class = CLASS_RLK
			c.ECD = ecd
		}
		return c
	}

	if containsLabel(labels, TMD_I2O) {
		c.Class = CLASS_RLK_RVRTMD
		return c
	}

	if labels[0] == TMD_O2I && containsLabel(labels[1:], KINASE) {
		c.Class = CLASS_RLK_WE
	}
	return c
}

// ClassifyRLP assigns RLP or RLPUN. The architecture must end on a
// transmembrane crossing; a protein with anything after its last crossing is
// excluded (ok = false), as is one with no crossing at all.
func ClassifyRLP(protein string, hits []DomainHit) (Classification, bool) {
	labels := labelsOf(hits)

	if !hasTMD(labels) {
		return Classification{}, false
	}
	last := labels[len(labels)-1]
	if last != TMD_O2I && last != TMD_I2O {
		return Classification{}, false
	}

	c := Classification{Protein: protein, Class: CLASS_RLPUN, ECD: ECD_NONE}
	if ecd := ecdFrom(labels[:len(labels)-1]); ecd != "" {
		c.Class = CLASS_RLP
		c.ECD = ecd
	}
	return c, true
}

// ecdFrom builds the extracellular-domain string from the labels preceding
// the matched crossing: one leading Sig_Pep is stripped, every TMD_* token is
// stripped, the rest join on ECD_SEP. Empty means no extracellular domain.
func ecdFrom(prefix []string) string {
	if len(prefix) > 0 && prefix[0] == SIG_PEP {
		prefix = prefix[1:]
	}
	var ecd []string
	for _, label := range prefix {
		if strings.HasPrefix(label, TMD_PREFIX) {
			continue
		}
		ecd = append(ecd, label)
	}
	return strings.Join(ecd, ECD_SEP)
}

func labelsOf(hits []DomainHit) []string {
	labels := make([]string, len(hits))
	for i, hit := range hits {
		labels[i] = hit.Label
	}
	return labels
}

func hasTMD(labels []string) bool {
	for _, label := range labels {
		if strings.HasPrefix(label, TMD_PREFIX) {
			return true
		}
	}
	return false
}

func containsLabel(labels []string, want string) bool {
	for _, label := range labels {
		if label == want {
			return true
		}
	}
	return false
}

func countLabel(labels []string, want string) int {
	n := 0
	for _, label := range labels {
		if label == want {
			n++
		}
	}
	return n
}
