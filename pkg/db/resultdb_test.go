package db

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/yumyai/rlkscan/pkg/model"
)

func openTestDB(t *testing.T) *ResultDB {
	t.Helper()

	sqldb, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { sqldb.Close() })

	store, err := NewResultDB(sqldb)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestResultDBRoundTrip(t *testing.T) {
	store := openTestDB(t)

	runID, err := store.BeginRun("RLK")
	if err != nil {
		t.Fatal(err)
	}
	if runID == "" {
		t.Fatal("empty run ID")
	}

	hits := model.HitTable{
		"prot1": {
			{Label: model.SIG_PEP, Start: 1, End: 20},
			{Label: "LRR", EValue: 1e-20, Start: 30, End: 80},
		},
	}
	if err := store.SaveDomains(runID, hits); err != nil {
		t.Fatal(err)
	}

	rows := []model.Classification{
		{Protein: "prot1", Class: model.CLASS_RLK, ECD: "LRR", KDCount: 1},
		{Protein: "prot2", Class: model.CLASS_RLK_WE, ECD: model.ECD_NONE, KDCount: 1},
		{Protein: "prot3", Class: model.CLASS_RLK, ECD: "Malectin", KDCount: 2},
	}
	if err := store.SaveClassifications(runID, rows); err != nil {
		t.Fatal(err)
	}

	counts, err := store.CountClassifications(runID)
	if err != nil {
		t.Fatal(err)
	}
	if counts[model.CLASS_RLK] != 2 || counts[model.CLASS_RLK_WE] != 1 {
		t.Errorf("counts = %v, want RLK:2 RLK_WE:1", counts)
	}
}
