package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/joho/godotenv"

	"github.com/yumyai/rlkscan/internal/util"
	"github.com/yumyai/rlkscan/logger"
	resultdb "github.com/yumyai/rlkscan/pkg/db"
	"github.com/yumyai/rlkscan/pkg/pipeline"
	"github.com/yumyai/rlkscan/pkg/report"
	"github.com/yumyai/rlkscan/pkg/scan"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

func main() {

	// Establish logger
	VERSION := "0.2.0"
	LOG_LEVEL := logger.LevelFromEnv(os.Getenv("RLKSCAN_LOG_LEVEL"))

	if err := logger.InitLogger(LOG_LEVEL); err != nil {
		panic(err)
	}

	// Try load env
	dotenvErr := godotenv.Load()

	if dotenvErr != nil {
		logger.Warn("No .env found, using local environment")
	}

	defer logger.Sync() // Make sure that the buffered is flushed.

	mode := flag.String("mode", "rlk", "workflow to run: rlk or rlp")
	domainsPath := flag.String("domains", "", "domain-scan report (protein label e_value start end)")
	topoPath := flag.String("topology", "", "per-residue topology report (protein topology_string)")
	fastaPath := flag.String("fasta", "", "proteome FASTA (for the topology length check)")
	outDir := flag.String("out", "", "output directory (default $RLKSCAN_OUT or ./results)")
	dbPath := flag.String("db", "", "optional sqlite file to mirror results into")
	scanBin := flag.String("hmmscan-bin", "", "run this domain scanner when -domains is not given")
	profileDB := flag.String("hmm-db", "", "profile database for -hmmscan-bin")
	topoBin := flag.String("topology-bin", "", "run this topology predictor when -topology is not given")
	flag.Parse()

	if *outDir == "" {
		*outDir = os.Getenv("RLKSCAN_OUT")
	}
	if *outDir == "" {
		logger.Warn("No local environment (RLKSCAN_OUT), using default value (./results)")
		*outDir = "./results"
	}

	logger.Info("Start:", zap.String("Version", VERSION), zap.String("mode", *mode))

	if err := run(*mode, *domainsPath, *topoPath, *fastaPath, *outDir, *dbPath,
		*scanBin, *profileDB, *topoBin); err != nil {
		logger.Error("Run aborted", zap.String("error message", err.Error()))
		logger.Sync()
		os.Exit(1)
	}
}

func run(mode, domainsPath, topoPath, fastaPath, outDir, dbPath,
	scanBin, profileDB, topoBin string) error {

	if fastaPath == "" {
		return fmt.Errorf("a proteome FASTA is required (-fasta)")
	}
	if err := util.EnsureDir(outDir); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}

	// Invoke the external tools when no pre-computed report was handed in.
	if domainsPath == "" {
		if scanBin == "" || profileDB == "" {
			return fmt.Errorf("need -domains, or -hmmscan-bin plus -hmm-db to produce it")
		}
		domainsPath = path.Join(outDir, "domain_scan.txt")
		if err := scan.RunDomainScan(scanBin, profileDB, fastaPath, domainsPath); err != nil {
			return err
		}
	}
	if topoPath == "" {
		if topoBin == "" {
			return fmt.Errorf("need -topology, or -topology-bin to produce it")
		}
		topoPath = path.Join(outDir, "topology.txt")
		if err := scan.RunTopologyPredict(topoBin, fastaPath, topoPath); err != nil {
			return err
		}
	}

	domains, err := report.LoadDomainTable(domainsPath)
	if err != nil {
		return err
	}
	topo, err := report.LoadTopology(topoPath)
	if err != nil {
		return err
	}
	seqLen, err := report.LoadSequenceLengths(fastaPath)
	if err != nil {
		return err
	}

	logger.Info("Inputs loaded",
		zap.Int("scan_hits", len(domains)),
		zap.Int("topology_records", len(topo)),
		zap.Int("sequences", len(seqLen)))

	p := pipeline.New()

	if dbPath != "" {
		sqldb, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return fmt.Errorf("cannot open result store: %w", err)
		}
		defer sqldb.Close()

		store, err := resultdb.NewResultDB(sqldb)
		if err != nil {
			return err
		}
		p.Results = store
		logger.Info("Mirroring results", zap.String("DB_LOC", dbPath))
	}

	switch mode {
	case "rlk":
		return p.RunRLK(domains, topo, seqLen, outDir)
	case "rlp":
		return p.RunRLP(domains, topo, seqLen, outDir)
	default:
		return fmt.Errorf("unknown mode %q (want rlk or rlp)", mode)
	}
}
