// The two end-to-end flows: RLK (receptor-like kinases) and RLP
// (receptor-like proteins). Both run the same stage sequence over the
// per-protein hit table — merge topology, sort by e-value, resolve overlaps,
// sort by start — and differ in eligibility and classification rules.
package pipeline

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/yumyai/rlkscan/logger"
	resultdb "github.com/yumyai/rlkscan/pkg/db"
	"github.com/yumyai/rlkscan/pkg/model"
	"github.com/yumyai/rlkscan/pkg/render"
	"github.com/yumyai/rlkscan/pkg/report"
)

// MissingRequiredInputError aborts a whole run: with an annotation source
// entirely absent, classification is meaningless.
type MissingRequiredInputError struct {
	Source string
}

func (e *MissingRequiredInputError) Error() string {
	return fmt.Sprintf("missing required input: %s", e.Source)
}

// Output file names, relative to the run's output directory.
const (
	FinalDomainFile = "final_domains.tsv"
	RLKTableFile    = "RLK.tsv"
	RLKOthersFile   = "RLK_others.tsv"
	RLPTableFile    = "RLP.tsv"
)

// Pipeline holds the knobs shared by both flows. Results is optional; when
// set, every run is mirrored into the sqlite store.
type Pipeline struct {
	KinaseCutoff   float64
	DomainCutoff   float64
	KinaseFamilies map[string]bool
	Results        *resultdb.ResultDB
}

// New returns a pipeline with the published cutoffs and the default kinase
// family set.
func New() *Pipeline {
	return &Pipeline{
		KinaseCutoff:   model.KINASE_EVALUE_CUTOFF,
		DomainCutoff:   model.DOMAIN_EVALUE_CUTOFF,
		KinaseFamilies: model.KINASE_FAMILIES,
	}
}

func (p *Pipeline) checkInputs(domains []report.DomainRecord, topo map[string]string) error {
	if len(domains) == 0 {
		return &MissingRequiredInputError{Source: "domain-scan report has no hits"}
	}
	if len(topo) == 0 {
		return &MissingRequiredInputError{Source: "topology report has no records"}
	}
	return nil
}

// reconcile runs the shared stage sequence over an already-populated table.
func reconcile(hits model.HitTable, topo map[string]string, seqLen map[string]int) {
	model.MergeTopology(hits, topo, seqLen)
	model.SortByEValue(hits)
	model.FilterOverlaps(hits)
	model.SortByStart(hits)
}

// RunRLK executes the receptor-like kinase flow. Input is restricted to
// proteins carrying at least one true Kinase hit; zero such proteins aborts
// the run before anything is written.
func (p *Pipeline) RunRLK(domains []report.DomainRecord, topo map[string]string,
	seqLen map[string]int, outDir string) error {

	if err := p.checkInputs(domains, topo); err != nil {
		return err
	}

	// Keep kinase-family hits unconditionally (relabeling decides their
	// fate) and everything else below the loose cutoff.
	hits := make(model.HitTable)
	for _, rec := range domains {
		if !p.KinaseFamilies[rec.Label] && rec.EValue > p.DomainCutoff {
			continue
		}
		hits[rec.Protein] = append(hits[rec.Protein], model.DomainHit{
			Label:  rec.Label,
			EValue: rec.EValue,
			Start:  rec.Start,
			End:    rec.End,
		})
	}

	for protein, list := range hits {
		if model.RelabelKinases(list, p.KinaseFamilies) == 0 {
			delete(hits, protein)
		}
	}
	if len(hits) == 0 {
		return fmt.Errorf("no protein carries a kinase domain at e-value <= %g; nothing to classify", p.KinaseCutoff)
	}
	logger.Info("RLK candidates with a qualifying kinase domain", zap.Int("proteins", len(hits)))

	// Topology only matters for proteins that survived the kinase gate.
	candTopo := make(map[string]string)
	for protein := range hits {
		if ts, ok := topo[protein]; ok {
			candTopo[protein] = ts
		}
	}
	reconcile(hits, candTopo, seqLen)

	primary := make([]model.Classification, 0, len(hits))
	secondary := make([]model.Classification, 0)
	for _, protein := range hits.Proteins() {
		c := model.ClassifyRLK(protein, hits[protein])
		switch c.Class {
		case model.CLASS_RLK, model.CLASS_RLK_WE:
			primary = append(primary, c)
		default:
			secondary = append(secondary, c)
		}
	}

	if err := render.WriteDomainTable(filepath.Join(outDir, FinalDomainFile), hits); err != nil {
		return err
	}
	if err := render.WriteRLKTable(filepath.Join(outDir, RLKTableFile), primary); err != nil {
		return err
	}
	if err := render.WriteRLKTable(filepath.Join(outDir, RLKOthersFile), secondary); err != nil {
		return err
	}
	logger.Info("RLK flow done",
		zap.Int("receptor_kinases", len(primary)),
		zap.Int("other_candidates", len(secondary)))

	return p.persist("RLK", hits, append(primary, secondary...))
}

// RunRLP executes the receptor-like protein flow. Eligible proteins have at
// least one scan hit below the loose cutoff plus a topology record; proteins
// whose architecture does not end on a transmembrane crossing produce no row.
func (p *Pipeline) RunRLP(domains []report.DomainRecord, topo map[string]string,
	seqLen map[string]int, outDir string) error {

	if err := p.checkInputs(domains, topo); err != nil {
		return err
	}

	hits := make(model.HitTable)
	for _, rec := range domains {
		if rec.EValue > p.DomainCutoff {
			continue
		}
		hits[rec.Protein] = append(hits[rec.Protein], model.DomainHit{
			Label:  rec.Label,
			EValue: rec.EValue,
			Start:  rec.Start,
			End:    rec.End,
		})
	}
	candTopo := make(map[string]string)
	for protein := range hits {
		ts, ok := topo[protein]
		if !ok {
			delete(hits, protein)
			continue
		}
		candTopo[protein] = ts
	}
	if len(hits) == 0 {
		logger.Warn("No protein has both a significant scan hit and a topology record")
	}

	reconcile(hits, candTopo, seqLen)

	var rows []model.Classification
	for _, protein := range hits.Proteins() {
		if c, ok := model.ClassifyRLP(protein, hits[protein]); ok {
			rows = append(rows, c)
		}
	}

	if err := render.WriteDomainTable(filepath.Join(outDir, FinalDomainFile), hits); err != nil {
		return err
	}
	if err := render.WriteRLPTable(filepath.Join(outDir, RLPTableFile), rows); err != nil {
		return err
	}
	logger.Info("RLP flow done", zap.Int("receptor_proteins", len(rows)))

	return p.persist("RLP", hits, rows)
}

func (p *Pipeline) persist(workflow string, hits model.HitTable, rows []model.Classification) error {
	if p.Results == nil {
		return nil
	}

	runID, err := p.Results.BeginRun(workflow)
	if err != nil {
		return err
	}
	if err := p.Results.SaveDomains(runID, hits); err != nil {
		return err
	}
	if err := p.Results.SaveClassifications(runID, rows); err != nil {
		return err
	}
	logger.Info("Run persisted", zap.String("run_id", runID))
	return nil
}
