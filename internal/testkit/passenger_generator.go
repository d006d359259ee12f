package testkit

import (
	"math"
	"math/rand"

	"goeda/domain/dataset"
)

// GeneratorConfig configures the synthetic passenger generator
type GeneratorConfig struct {
	TrainRows       int     `json:"train_rows"`
	TestRows        int     `json:"test_rows"`
	MissingAgeRate  float64 `json:"missing_age_rate"`
	MissingFareRate float64 `json:"missing_fare_rate"`
	Seed            int64   `json:"seed"`
}

// DefaultGeneratorConfig returns sensible defaults sized like the classic
// survival dataset
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		TrainRows:       891,
		TestRows:        418,
		MissingAgeRate:  0.20,
		MissingFareRate: 0.01,
		Seed:            42,
	}
}

// PassengerGenerator produces synthetic passenger manifests whose survival
// outcomes correlate with sex and cabin class, so grouped and correlation
// analyses have real structure to find
type PassengerGenerator struct {
	config GeneratorConfig
	rng    *rand.Rand
	nextID int
}

// NewPassengerGenerator creates a deterministic generator for the config's
// seed
func NewPassengerGenerator(config GeneratorConfig) *PassengerGenerator {
	return &PassengerGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
		nextID: 1,
	}
}

// Generate produces a labeled train batch and an unlabeled test batch with
// sequential passenger IDs across both
func (g *PassengerGenerator) Generate() (train, test dataset.RecordBatch) {
	train = dataset.RecordBatch{
		Columns: []string{"PassengerId", "Pclass", "Sex", "Age", "Fare", "Embarked", "Survived"},
		Rows:    make([]dataset.Row, 0, g.config.TrainRows),
	}
	for i := 0; i < g.config.TrainRows; i++ {
		train.Rows = append(train.Rows, g.passenger(true))
	}

	test = dataset.RecordBatch{
		Columns: []string{"PassengerId", "Pclass", "Sex", "Age", "Fare", "Embarked"},
		Rows:    make([]dataset.Row, 0, g.config.TestRows),
	}
	for i := 0; i < g.config.TestRows; i++ {
		test.Rows = append(test.Rows, g.passenger(false))
	}

	return train, test
}

func (g *PassengerGenerator) passenger(labeled bool) dataset.Row {
	row := dataset.Row{}

	row["PassengerId"] = float64(g.nextID)
	g.nextID++

	pclass := g.cabinClass()
	row["Pclass"] = pclass

	sex := "male"
	if g.rng.Float64() < 0.35 {
		sex = "female"
	}
	row["Sex"] = sex

	if g.rng.Float64() >= g.config.MissingAgeRate {
		row["Age"] = math.Round(clampFloat(g.rng.NormFloat64()*14+30, 1, 80))
	}
	if g.rng.Float64() >= g.config.MissingFareRate {
		row["Fare"] = math.Round(g.fare(pclass)*100) / 100
	}

	row["Embarked"] = g.port()

	if labeled {
		row["Survived"] = g.outcome(sex, pclass)
	}

	return row
}

// cabinClass draws 1, 2 or 3 with third class most common
func (g *PassengerGenerator) cabinClass() float64 {
	switch r := g.rng.Float64(); {
	case r < 0.24:
		return 1
	case r < 0.45:
		return 2
	default:
		return 3
	}
}

// fare is class-dependent with lognormal-style spread
func (g *PassengerGenerator) fare(pclass float64) float64 {
	base := map[float64]float64{1: 84, 2: 21, 3: 13}[pclass]
	spread := math.Exp(g.rng.NormFloat64() * 0.5)
	return base * spread
}

func (g *PassengerGenerator) port() string {
	switch r := g.rng.Float64(); {
	case r < 0.72:
		return "S"
	case r < 0.91:
		return "C"
	default:
		return "Q"
	}
}

// outcome draws survival with sex as the dominant factor and class as a
// secondary one
func (g *PassengerGenerator) outcome(sex string, pclass float64) float64 {
	probability := 0.19
	if sex == "female" {
		probability = 0.74
	}
	switch pclass {
	case 1:
		probability += 0.12
	case 3:
		probability -= 0.06
	}

	if g.rng.Float64() < probability {
		return 1
	}
	return 0
}

func clampFloat(v, lower, upper float64) float64 {
	if v < lower {
		return lower
	}
	if v > upper {
		return upper
	}
	return v
}
