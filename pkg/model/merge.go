package model

import (
	"fmt"

	"github.com/yumyai/rlkscan/logger"
	"go.uber.org/zap"
)

// LengthMismatchError flags a topology prediction whose residue count does
// not match the protein sequence. The topology record is dropped; the
// protein stays eligible for domain-only classification.
type LengthMismatchError struct {
	Protein string
	TopoLen int
	SeqLen  int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("topology length %d != sequence length %d for %s",
		e.TopoLen, e.SeqLen, e.Protein)
}

// TopologyHits converts a per-residue topology string into synthesized hits.
// Runs come out grouped by label (Sig_Pep first, then TMD_o2i, then TMD_i2o),
// each group ascending by start, all with e-value 0.
func TopologyHits(topo string) []DomainHit {
	sets := map[string]*IntervalSet{
		SIG_PEP: NewIntervalSet(),
		TMD_O2I: NewIntervalSet(),
		TMD_I2O: NewIntervalSet(),
	}

	for i := 0; i < len(topo); i++ {
		label, ok := TOPOLOGY_CODE[topo[i]]
		if !ok {
			continue // non-membrane residue
		}
		// Single positions, coalescing turns them into runs.
		_ = sets[label].AddRange(i+1, i+1)
	}

	var hits []DomainHit
	for _, label := range []string{SIG_PEP, TMD_O2I, TMD_I2O} {
		for _, run := range sets[label].Runlist() {
			hits = append(hits, DomainHit{
				Label:  label,
				EValue: 0,
				Start:  run.Lo,
				End:    run.Hi,
			})
		}
	}
	return hits
}

// MergeTopology appends synthesized topology hits to each protein's scan
// hits, creating the table entry when a protein only shows up in the
// topology report. A protein whose prediction length disagrees with its
// sequence length contributes nothing (logged, not fatal).
func MergeTopology(hits HitTable, topo map[string]string, seqLen map[string]int) {
	for protein, ts := range topo {
		if n, ok := seqLen[protein]; ok && n != len(ts) {
			err := &LengthMismatchError{Protein: protein, TopoLen: len(ts), SeqLen: n}
			logger.Warn("Dropping topology record", zap.Error(err))
			continue
		}

		synth := TopologyHits(ts)
		if len(synth) == 0 {
			continue
		}
		hits[protein] = append(hits[protein], synth...)
	}
}
