package types

// ReconcileConfig holds settings for the reconciliation pass.
type ReconcileConfig struct {
	// PrimaryPath is the CSV file holding the combined passenger manifest.
	PrimaryPath string `json:"primary_path" yaml:"primary_path"`

	// RefAPath is the CSV file for reference manifest A, tested first.
	RefAPath string `json:"ref_a_path" yaml:"ref_a_path"`

	// RefBPath is the CSV file for reference manifest B, tested second.
	RefBPath string `json:"ref_b_path" yaml:"ref_b_path"`

	// OutputPath is where the enriched manifest CSV is written.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// ReportPath, when set, receives a YAML reconciliation report.
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty"`
}

// StoreConfig holds settings for the sqlite store of reconciled rows.
type StoreConfig struct {
	// DBPath is the sqlite database file (e.g. "data/index/manifest.db").
	DBPath string `json:"db_path" yaml:"db_path"`
}

// ToolchainConfig holds settings for the tool resolver.
type ToolchainConfig struct {
	// GoBin is the go tool binary used for installs (default "go").
	GoBin string `json:"go_bin" yaml:"go_bin"`

	// Mirrors maps the named alternate source identifiers to proxy URLs.
	Mirrors map[string]string `json:"mirrors,omitempty" yaml:"mirrors,omitempty"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Reconcile ReconcileConfig `json:"reconcile" yaml:"reconcile"`
	Store     StoreConfig     `json:"store" yaml:"store"`
	Toolchain ToolchainConfig `json:"toolchain" yaml:"toolchain"`
}
