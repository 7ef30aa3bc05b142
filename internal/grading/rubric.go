package grading

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"TradeScope/internal/model"
)

// Rubric holds the thresholds and weights driving the grading engine.
// It is an explicit value passed into NewEngine, never process-wide state,
// so engines with different rubrics can coexist.
type Rubric struct {
	Fundamentals FundamentalsRubric `yaml:"fundamentals"`
	Technicals   TechnicalsRubric   `yaml:"technicals"`
	Weights      Weights            `yaml:"weights"`
}

type FundamentalsRubric struct {
	MinGrossMargin     float64 `yaml:"min_gross_margin"`
	MinRevCAGR3Y       float64 `yaml:"min_rev_cagr_3y"`
	MaxNetDebtToEBITDA float64 `yaml:"max_net_debt_to_ebitda"`
}

type TechnicalsRubric struct {
	RSIOversold      float64 `yaml:"rsi_oversold"`
	RSIOverbought    float64 `yaml:"rsi_overbought"`
	AboveSMA200Bonus float64 `yaml:"above_sma200_bonus"`
	MACDSignalBias   float64 `yaml:"macd_signal_bias"`
}

// Weights blend the three sub-scores. A well-formed rubric sums to 1.0;
// the engine clamps rather than normalizes, so the caller owns that
// invariant.
type Weights struct {
	Fundamentals float64 `yaml:"fundamentals"`
	Technicals   float64 `yaml:"technicals"`
	News         float64 `yaml:"news"`
}

// DefaultRubric returns the short-term grading defaults.
func DefaultRubric() Rubric {
	return Rubric{
		Fundamentals: FundamentalsRubric{
			MinGrossMargin:     0.25,
			MinRevCAGR3Y:       0.05,
			MaxNetDebtToEBITDA: 3.0,
		},
		Technicals: TechnicalsRubric{
			RSIOversold:      30,
			RSIOverbought:    70,
			AboveSMA200Bonus: 0.1,
			MACDSignalBias:   0.05,
		},
		Weights: Weights{Fundamentals: 0.5, Technicals: 0.3, News: 0.2},
	}
}

// LoadRubric reads a rubric YAML file layered over the defaults. A missing
// file yields the defaults; a malformed file is a ConfigError.
func LoadRubric(path string) (Rubric, error) {
	rubric := DefaultRubric()
	if path == "" {
		return rubric, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return rubric, nil
		}
		return rubric, fmt.Errorf("read rubric: %w", err)
	}
	if err := yaml.Unmarshal(data, &rubric); err != nil {
		return rubric, &model.ConfigError{Msg: fmt.Sprintf("parse rubric %s: %v", path, err)}
	}
	return rubric, nil
}
