package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yumyai/rlkscan/logger"
	"github.com/yumyai/rlkscan/pkg/report"
	"go.uber.org/zap/zapcore"
)

func TestMain(m *testing.M) {
	if err := logger.InitLogger(zapcore.ErrorLevel); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type seg struct {
	code   byte
	lo, hi int
}

func topoBuild(n int, segs ...seg) string {
	b := []byte(strings.Repeat(".", n))
	for _, s := range segs {
		for i := s.lo; i <= s.hi; i++ {
			b[i-1] = s.code
		}
	}
	return string(b)
}

func readTable(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestRunRLK(t *testing.T) {
	domains := []report.DomainRecord{
		// prot1: full receptor kinase architecture.
		{Protein: "prot1", Label: "LRR", EValue: 1e-20, Start: 30, End: 80},
		{Protein: "prot1", Label: "Pkinase", EValue: 1e-50, Start: 200, End: 280},
		// prot2: kinase but no membrane crossing, lands in the side table.
		{Protein: "prot2", Label: "Pkinase", EValue: 1e-30, Start: 50, End: 150},
		// prot3: no kinase domain, filtered out before classification.
		{Protein: "prot3", Label: "LRR", EValue: 1e-8, Start: 10, End: 60},
		// prot4: kinase-family hit too weak to count, filtered out too.
		{Protein: "prot4", Label: "Pkinase", EValue: 1e-5, Start: 50, End: 150},
	}
	topo := map[string]string{
		"prot1": topoBuild(300, seg{'S', 1, 20}, seg{'h', 100, 120}),
		"prot2": topoBuild(200),
		"prot3": topoBuild(100, seg{'h', 70, 90}),
	}
	seqLen := map[string]int{"prot1": 300, "prot2": 200, "prot3": 100, "prot4": 200}

	outDir := t.TempDir()
	if err := New().RunRLK(domains, topo, seqLen, outDir); err != nil {
		t.Fatal(err)
	}

	primary := readTable(t, filepath.Join(outDir, RLKTableFile))
	if len(primary) != 2 {
		t.Fatalf("primary table = %v, want header + 1 row", primary)
	}
	if primary[0] != "Name\tType\tECD\tKD_count" {
		t.Errorf("header = %q", primary[0])
	}
	if primary[1] != "prot1\tRLK\tLRR\t1" {
		t.Errorf("row = %q, want prot1 RLK LRR 1", primary[1])
	}

	secondary := readTable(t, filepath.Join(outDir, RLKOthersFile))
	if len(secondary) != 2 || secondary[1] != "prot2\tOthers\tNone\t1" {
		t.Errorf("secondary table = %v, want prot2 Others row", secondary)
	}

	finals := readTable(t, filepath.Join(outDir, FinalDomainFile))
	want := []string{
		"Name\tLabel\tStart\tEnd",
		"prot1\tSig_Pep\t1\t20",
		"prot1\tLRR\t30\t80",
		"prot1\tTMD_o2i\t100\t120",
		"prot1\tKinase\t200\t280",
		"prot2\tKinase\t50\t150",
	}
	if len(finals) != len(want) {
		t.Fatalf("final domain table = %v, want %v", finals, want)
	}
	for i := range want {
		if finals[i] != want[i] {
			t.Errorf("final domain row %d = %q, want %q", i, finals[i], want[i])
		}
	}
}

func TestRunRLKNoKinaseAborts(t *testing.T) {
	domains := []report.DomainRecord{
		{Protein: "prot1", Label: "LRR", EValue: 1e-20, Start: 30, End: 80},
	}
	topo := map[string]string{"prot1": topoBuild(100)}
	seqLen := map[string]int{"prot1": 100}

	outDir := t.TempDir()
	if err := New().RunRLK(domains, topo, seqLen, outDir); err == nil {
		t.Fatal("run with zero kinase candidates must abort")
	}

	// All-or-nothing: nothing may have been written.
	if _, err := os.Stat(filepath.Join(outDir, RLKTableFile)); !os.IsNotExist(err) {
		t.Error("aborted run must not leave a primary table behind")
	}
}

func TestRunRLKMissingInput(t *testing.T) {
	topo := map[string]string{"prot1": topoBuild(100)}

	err := New().RunRLK(nil, topo, map[string]int{"prot1": 100}, t.TempDir())
	var miss *MissingRequiredInputError
	if !errors.As(err, &miss) {
		t.Fatalf("err = %v, want *MissingRequiredInputError", err)
	}

	err = New().RunRLK([]report.DomainRecord{
		{Protein: "prot1", Label: "Pkinase", EValue: 1e-50, Start: 1, End: 100},
	}, nil, map[string]int{"prot1": 100}, t.TempDir())
	if !errors.As(err, &miss) {
		t.Fatalf("err = %v, want *MissingRequiredInputError", err)
	}
}

func TestRunRLP(t *testing.T) {
	domains := []report.DomainRecord{
		// prot1: ectodomain then a terminal crossing.
		{Protein: "prot1", Label: "LRR", EValue: 1e-5, Start: 30, End: 80},
		// prot2: a domain after the crossing, excluded by the end anchor.
		{Protein: "prot2", Label: "PAN", EValue: 1e-6, Start: 150, End: 190},
		// prot3: hit too weak for the loose cutoff, ineligible.
		{Protein: "prot3", Label: "LRR", EValue: 0.05, Start: 10, End: 60},
	}
	topo := map[string]string{
		"prot1": topoBuild(170, seg{'S', 1, 20}, seg{'h', 150, 170}),
		"prot2": topoBuild(200, seg{'h', 100, 120}),
		"prot3": topoBuild(100, seg{'h', 80, 100}),
	}
	seqLen := map[string]int{"prot1": 170, "prot2": 200, "prot3": 100}

	outDir := t.TempDir()
	if err := New().RunRLP(domains, topo, seqLen, outDir); err != nil {
		t.Fatal(err)
	}

	table := readTable(t, filepath.Join(outDir, RLPTableFile))
	if len(table) != 2 {
		t.Fatalf("RLP table = %v, want header + 1 row", table)
	}
	if table[0] != "Name\tType\tECD" {
		t.Errorf("header = %q", table[0])
	}
	if table[1] != "prot1\tRLP\tLRR" {
		t.Errorf("row = %q, want prot1 RLP LRR", table[1])
	}
}

func TestRunRLPLengthMismatchFallsBack(t *testing.T) {
	domains := []report.DomainRecord{
		{Protein: "prot1", Label: "LRR", EValue: 1e-5, Start: 30, End: 80},
	}
	// Topology one residue short: dropped, so no crossing, so no row. The
	// run itself still succeeds.
	topo := map[string]string{
		"prot1": topoBuild(169, seg{'h', 150, 169}),
	}
	seqLen := map[string]int{"prot1": 170}

	outDir := t.TempDir()
	if err := New().RunRLP(domains, topo, seqLen, outDir); err != nil {
		t.Fatal(err)
	}

	table := readTable(t, filepath.Join(outDir, RLPTableFile))
	if len(table) != 1 {
		t.Errorf("RLP table = %v, want header only", table)
	}
}
