package model

// Labels synthesized from topology prediction or rewritten by the RLK flow.
const (
	SIG_PEP     = "Sig_Pep"
	TMD_O2I     = "TMD_o2i"
	TMD_I2O     = "TMD_i2o"
	TMD_PREFIX  = "TMD_"
	KINASE      = "Kinase"
	FAKE_KINASE = "Fake_kinase"
)

// Architecture classes.
const (
	CLASS_RLK        = "RLK"
	CLASS_RLK_WE     = "RLK_WE"
	CLASS_RLK_RVRTMD = "RLK_RvrTMD"
	CLASS_OTHERS     = "Others"
	CLASS_RLP        = "RLP"
	CLASS_RLPUN      = "RLPUN"
)

// ECD_NONE marks a missing extracellular domain in the output tables.
const ECD_NONE = "None"

// ECD_SEP joins extracellular domain labels in the ECD column.
const ECD_SEP = ";"

// Significance cutoffs. All comparisons are <=, so a hit at exactly the
// cutoff is accepted.
const (
	KINASE_EVALUE_CUTOFF = 1e-10 // kinase-family hit must pass this to count as Kinase
	DOMAIN_EVALUE_CUTOFF = 1e-3  // everything else (RLK ECD composition, RLP eligibility)
)

// TOPOLOGY_CODE maps one per-residue predictor code to the label its run is
// reported under. Residue codes outside the map are non-membrane.
var TOPOLOGY_CODE = map[byte]string{
	'S': SIG_PEP,
	'h': TMD_O2I, // outward-facing helix residue
	'b': TMD_O2I, // outward-facing beta residue
	'H': TMD_I2O, // inward-facing helix residue
	'B': TMD_I2O, // inward-facing beta residue
}

// KINASE_FAMILIES is the default set of domain-scan family names that the RLK
// flow rewrites to Kinase / Fake_kinase.
// TODO: load this from a file once more predictors than Pfam are supported.
var KINASE_FAMILIES = map[string]bool{
	"Pkinase":        true,
	"Pkinase_Tyr":    true,
	"PK_Tyr_Ser-Thr": true,
	"Pkinase_C":      true,
}
