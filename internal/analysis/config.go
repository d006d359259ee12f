package analysis

// Config is the static configuration surface for one dataset schema.
// It is provided at construction and never mutated at runtime; analyzing a
// different dataset means supplying a different Config, not editing engine
// logic.
type Config struct {
	// LabelColumn is the numeric-binary outcome column, present only in
	// train-origin rows
	LabelColumn string

	// FeatureColumns fixes membership and order for the correlation matrix
	// and histogram passes. Empty means every non-excluded dataset column in
	// dataset order.
	FeatureColumns []string

	// ExcludedColumns are identifier-style columns skipped by every analyzer
	ExcludedColumns []string
}

// DefaultConfig returns the survival-dataset schema: a Survived label with
// the passenger identifier excluded from analysis
func DefaultConfig() Config {
	return Config{
		LabelColumn:     "Survived",
		ExcludedColumns: []string{"PassengerId"},
	}
}

// IsExcluded reports whether the column is in the exclusion set
func (c Config) IsExcluded(col string) bool {
	for _, excluded := range c.ExcludedColumns {
		if excluded == col {
			return true
		}
	}
	return false
}
