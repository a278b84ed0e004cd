// External annotation tools, consumed as black boxes: run the executable,
// capture its text report, hand the path to pkg/report. Flags and exit codes
// are the tools' business; only success or failure matters here.
package scan

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"

	"github.com/yumyai/rlkscan/logger"
	"go.uber.org/zap"
)

// runTool executes one annotation tool and writes its stdout to outPath.
func runTool(outPath string, name string, args ...string) error {
	cmd := exec.Command(name, args...)

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	logger.Info("Running external tool", zap.String("tool", name))

	if err := cmd.Run(); err != nil {
		logger.Error("External tool failed",
			zap.String("tool", name),
			zap.String("stderr", stderr.String()))
		return fmt.Errorf("failed to execute %s: %w", name, err)
	}

	if err := os.WriteFile(outPath, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s report: %w", name, err)
	}
	return nil
}

// RunDomainScan invokes an hmmscan-style domain scanner over the proteome
// FASTA against the given profile database, writing its tabular report to
// outPath.
func RunDomainScan(bin, profileDB, fastaPath, outPath string) error {
	return runTool(outPath, bin, "--noali", "--domtblout", "/dev/stdout", profileDB, fastaPath)
}

// RunTopologyPredict invokes a phobius-style topology predictor over the
// proteome FASTA, writing its per-residue report to outPath.
func RunTopologyPredict(bin, fastaPath, outPath string) error {
	return runTool(outPath, bin, fastaPath)
}
