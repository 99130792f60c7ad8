package types

// CorpusConfig locates the quadgram corpus.
type CorpusConfig struct {
	// Path is the quadgram text file ("ABCD 1234" per line).
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// DB is an optional SQLite store built by `corpus import`. When set and
	// present it is preferred over Path.
	DB string `json:"db,omitempty" yaml:"db,omitempty" mapstructure:"db"`

	// UnseenPenalty is added for every quadgram absent from the table (default -10).
	UnseenPenalty float64 `json:"unseen_penalty" yaml:"unseen_penalty" mapstructure:"unseen_penalty"`
}

// HillClimbConfig bounds deterministic hill climbing.
type HillClimbConfig struct {
	// MaxRounds caps the number of improving moves (default 1000).
	MaxRounds int `json:"max_rounds" yaml:"max_rounds" mapstructure:"max_rounds"`
}

// AnnealConfig holds the simulated annealing schedule shared by all
// families. Thresholds live in FamilyThresholds.
type AnnealConfig struct {
	// InitialTemp is the starting temperature, in per-quadgram fitness units.
	InitialTemp float64 `json:"initial_temp" yaml:"initial_temp" mapstructure:"initial_temp"`

	// Iterations is the length of one linear cooling schedule.
	Iterations int `json:"iterations" yaml:"iterations" mapstructure:"iterations"`

	// StaleLimit stops a run after this many consecutive rejected moves.
	StaleLimit int `json:"stale_limit" yaml:"stale_limit" mapstructure:"stale_limit"`

	// Checkpoint is the iteration at which the stale threshold is checked.
	Checkpoint int `json:"checkpoint" yaml:"checkpoint" mapstructure:"checkpoint"`

	// MaxRestarts bounds restarts from the best key.
	MaxRestarts int `json:"max_restarts" yaml:"max_restarts" mapstructure:"max_restarts"`

	// MaxIterations caps iterations across all restarts.
	MaxIterations int `json:"max_iterations" yaml:"max_iterations" mapstructure:"max_iterations"`

	// Starts is the number of independent annealing runs (run in parallel
	// up to SearchConfig.Workers).
	Starts int `json:"starts" yaml:"starts" mapstructure:"starts"`
}

// SearchConfig holds optimizer settings.
type SearchConfig struct {
	// Workers bounds parallel fitness evaluation (default 1: sequential).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// Seed makes annealing reproducible.
	Seed uint64 `json:"seed" yaml:"seed" mapstructure:"seed"`

	HillClimb HillClimbConfig `json:"hill_climb" yaml:"hill_climb" mapstructure:"hill_climb"`
	Anneal    AnnealConfig    `json:"anneal" yaml:"anneal" mapstructure:"anneal"`
}

// FamilyThresholds are the annealing restart thresholds for one family, in
// per-quadgram fitness units.
type FamilyThresholds struct {
	// StaleThreshold: at the checkpoint, a best fitness at or below this
	// value triggers a restart from the best key.
	StaleThreshold float64 `json:"stale_threshold" yaml:"stale_threshold" mapstructure:"stale_threshold"`

	// FinalThreshold: a run ends for good once the best fitness exceeds it.
	FinalThreshold float64 `json:"final_threshold" yaml:"final_threshold" mapstructure:"final_threshold"`
}

// AnalysisConfig holds statistical and structural detection settings.
type AnalysisConfig struct {
	// ICThreshold is the mean column index of coincidence a period must
	// exceed (default 0.06).
	ICThreshold float64 `json:"ic_threshold" yaml:"ic_threshold" mapstructure:"ic_threshold"`

	// MinPeriod and MaxPeriod bound the polyalphabetic period search.
	MinPeriod int `json:"min_period" yaml:"min_period" mapstructure:"min_period"`
	MaxPeriod int `json:"max_period" yaml:"max_period" mapstructure:"max_period"`

	// AffineTopK is how many of the most frequent symbols are paired.
	AffineTopK int `json:"affine_top_k" yaml:"affine_top_k" mapstructure:"affine_top_k"`

	// MaxTranspositionLength bounds scytale and columnar length searches.
	MaxTranspositionLength int `json:"max_transposition_length" yaml:"max_transposition_length" mapstructure:"max_transposition_length"`

	// ExhaustiveLimit: columnar keys with at most this many permutations
	// are enumerated instead of annealed.
	ExhaustiveLimit int `json:"exhaustive_limit" yaml:"exhaustive_limit" mapstructure:"exhaustive_limit"`

	// BifidPeriod is the Bifid block length (0 = whole message).
	BifidPeriod int `json:"bifid_period" yaml:"bifid_period" mapstructure:"bifid_period"`

	// HillCrib is the assumed four-letter plaintext for 2×2 Hill recovery.
	HillCrib string `json:"hill_crib" yaml:"hill_crib" mapstructure:"hill_crib"`

	// HillCribOffset is the crib position; negative drags it across every
	// even offset.
	HillCribOffset int `json:"hill_crib_offset" yaml:"hill_crib_offset" mapstructure:"hill_crib_offset"`

	// Keep lists extra non-letter symbols that join the letter stream
	// (e.g. "_" as a word separator).
	Keep string `json:"keep,omitempty" yaml:"keep,omitempty" mapstructure:"keep"`
}

// EngineConfig groups every setting of the cryptanalysis engine.
type EngineConfig struct {
	Corpus   CorpusConfig                `json:"corpus" yaml:"corpus" mapstructure:"corpus"`
	Search   SearchConfig                `json:"search" yaml:"search" mapstructure:"search"`
	Analysis AnalysisConfig              `json:"analysis" yaml:"analysis" mapstructure:"analysis"`
	Families map[Family]FamilyThresholds `json:"families,omitempty" yaml:"families,omitempty" mapstructure:"families"`
}

// DefaultThresholds applies to families without an explicit entry.
var DefaultThresholds = FamilyThresholds{StaleThreshold: -6.0, FinalThreshold: -5.0}

// DefaultEngineConfig returns the engine defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Corpus: CorpusConfig{
			Path:          "english_quadgrams.txt",
			UnseenPenalty: -10,
		},
		Search: SearchConfig{
			Workers:   1,
			Seed:      1,
			HillClimb: HillClimbConfig{MaxRounds: 1000},
			Anneal: AnnealConfig{
				InitialTemp:   0.1,
				Iterations:    20000,
				StaleLimit:    5000,
				Checkpoint:    10000,
				MaxRestarts:   5,
				MaxIterations: 200000,
				Starts:        1,
			},
		},
		Analysis: AnalysisConfig{
			ICThreshold:            0.06,
			MinPeriod:              2,
			MaxPeriod:              20,
			AffineTopK:             5,
			MaxTranspositionLength: 12,
			ExhaustiveLimit:        5040,
			HillCrib:               "that",
			HillCribOffset:         -1,
		},
		Families: map[Family]FamilyThresholds{
			FamilyPlayfair:   {StaleThreshold: -6.2, FinalThreshold: -5.2},
			FamilyBifid:      {StaleThreshold: -6.2, FinalThreshold: -5.2},
			FamilyFoursquare: {StaleThreshold: -6.2, FinalThreshold: -5.2},
			FamilyColumnar:   {StaleThreshold: -6.0, FinalThreshold: -5.0},
		},
	}
}

// ThresholdsFor returns the annealing thresholds for a family.
func (c EngineConfig) ThresholdsFor(f Family) FamilyThresholds {
	if t, ok := c.Families[f]; ok {
		return t
	}
	return DefaultThresholds
}
