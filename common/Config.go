package common

import (
	"os"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// DistributionConfig names a utility distribution family and carries every
// parameter any family may need. It is turned into a closed variant by
// utilitySource.FromConfig, which rejects unknown kinds.
type DistributionConfig struct {
	Kind string `yaml:"kind"`

	// uniform, spatial
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`

	// normal
	Mu    float64 `yaml:"mu"`
	Sigma float64 `yaml:"sigma"`

	// dirichlet: one alpha vector, or several picked uniformly per elector
	Alphas [][]float64 `yaml:"alphas"`

	// beta (Alpha, Beta), powerlaw (Xm, Alpha)
	Alpha float64 `yaml:"alpha"`
	Beta  float64 `yaml:"beta"`
	Xm    float64 `yaml:"xm"`
}

type OutputConfig struct {
	LogDir   string `yaml:"log_dir"`
	CSVDir   string `yaml:"csv_dir"`
	HTMLPath string `yaml:"html_path"`
	DBPath   string `yaml:"db_path"`
}

// Config holds every parameter of a run.
type Config struct {
	NElectors    int     `yaml:"n_electors"`
	NCandidates  int     `yaml:"n_candidates"`
	MinUtil      float64 `yaml:"min_util"`
	MaxIteration int     `yaml:"max_iteration"`
	Seed         uint64  `yaml:"seed"`

	Distribution    DistributionConfig `yaml:"distribution"`
	PivotalityModel string             `yaml:"pivotality_model"`

	// 0 silent, 1 round summaries, 2 per-elector and clamp diagnostics
	VerboseLevel int `yaml:"verbose_level"`

	Output OutputConfig `yaml:"output"`
}

const (
	DefaultMinUtil      = -1e10
	DefaultMaxIteration = 100
)

func DefaultConfig() Config {
	return Config{
		NElectors:    100,
		NCandidates:  4,
		MinUtil:      DefaultMinUtil,
		MaxIteration: DefaultMaxIteration,
		Seed:         1,
		Distribution: DistributionConfig{
			Kind: "uniform",
			Min:  0,
			Max:  100,
		},
		PivotalityModel: "rival",
		VerboseLevel:    1,
		Output: OutputConfig{
			LogDir: "logs",
		},
	}
}

// LoadConfig reads a yaml file over the defaults, so absent keys keep their
// default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, xerrors.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, xerrors.Errorf("%s: %w: %v", path, ErrInvalidConfiguration, err)
	}
	return cfg, nil
}

// Validate checks the population and loop parameters. Distribution and
// pivotality model names are checked by the packages that own them.
func (c Config) Validate() error {
	if c.NElectors <= 0 {
		return xerrors.Errorf("%w: n_electors must be positive, got %d", ErrInvalidConfiguration, c.NElectors)
	}
	if c.NCandidates < 2 {
		return xerrors.Errorf("%w: n_candidates must be at least 2, got %d", ErrInvalidConfiguration, c.NCandidates)
	}
	if c.MaxIteration <= 0 {
		return xerrors.Errorf("%w: max_iteration must be positive, got %d", ErrInvalidConfiguration, c.MaxIteration)
	}
	// every strategic entry is bounded by 2*(nCandidates-1) in magnitude
	if bound := -2 * float64(c.NCandidates); !(c.MinUtil < bound) {
		return xerrors.Errorf("%w: min_util must be below %v, got %v", ErrInvalidConfiguration, bound, c.MinUtil)
	}
	return nil
}
