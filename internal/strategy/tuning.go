package strategy

import (
	"errors"
	"io/fs"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Tuning holds the numeric knobs of the betting policy. Values not set in
// the tuning file keep their defaults, which match the thresholds the
// policy was developed against.
type Tuning struct {
	// Trials is the Monte-Carlo sample count per estimate.
	Trials int

	// Coast thresholds: once the bankroll lead exceeds what the blinds can
	// claw back, stop playing hands.
	CoastCostPerRound int
	CoastLooseCost    int
	CoastLooseRounds  int

	// Preflop strength tiers, on the 1..169 class ranking.
	PremiumCallRank int
	OpenStrongRank  int
	OpenMediumRank  int
	OpenWideRank    int

	// Postflop lead thresholds.
	ValueEquity   float64
	SemibluffDraw float64

	// Bluff frequencies.
	BaselineBluffPct float64
	OneCheckBluffPct float64
}

// DefaultTuning returns the stock policy parameters.
func DefaultTuning() Tuning {
	return Tuning{
		Trials:            200,
		CoastCostPerRound: 12,
		CoastLooseCost:    5,
		CoastLooseRounds:  100,
		PremiumCallRank:   6,
		OpenStrongRank:    30,
		OpenMediumRank:    70,
		OpenWideRank:      110,
		ValueEquity:       0.65,
		SemibluffDraw:     0.10,
		BaselineBluffPct:  0.30,
		OneCheckBluffPct:  0.40,
	}
}

// tuningFile mirrors Tuning with pointer fields so absent attributes are
// distinguishable from explicit zeroes.
type tuningFile struct {
	Trials            *int     `hcl:"trials,optional"`
	CoastCostPerRound *int     `hcl:"coast_cost_per_round,optional"`
	CoastLooseCost    *int     `hcl:"coast_loose_cost,optional"`
	CoastLooseRounds  *int     `hcl:"coast_loose_rounds,optional"`
	PremiumCallRank   *int     `hcl:"premium_call_rank,optional"`
	OpenStrongRank    *int     `hcl:"open_strong_rank,optional"`
	OpenMediumRank    *int     `hcl:"open_medium_rank,optional"`
	OpenWideRank      *int     `hcl:"open_wide_rank,optional"`
	ValueEquity       *float64 `hcl:"value_equity,optional"`
	SemibluffDraw     *float64 `hcl:"semibluff_draw,optional"`
	BaselineBluffPct  *float64 `hcl:"baseline_bluff_pct,optional"`
	OneCheckBluffPct  *float64 `hcl:"one_check_bluff_pct,optional"`
}

// LoadTuning reads an HCL tuning file, falling back to defaults when the
// path is empty or the file does not exist.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return t, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return t, diags
	}

	var raw tuningFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return t, diags
	}

	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	setFloat := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setInt(&t.Trials, raw.Trials)
	setInt(&t.CoastCostPerRound, raw.CoastCostPerRound)
	setInt(&t.CoastLooseCost, raw.CoastLooseCost)
	setInt(&t.CoastLooseRounds, raw.CoastLooseRounds)
	setInt(&t.PremiumCallRank, raw.PremiumCallRank)
	setInt(&t.OpenStrongRank, raw.OpenStrongRank)
	setInt(&t.OpenMediumRank, raw.OpenMediumRank)
	setInt(&t.OpenWideRank, raw.OpenWideRank)
	setFloat(&t.ValueEquity, raw.ValueEquity)
	setFloat(&t.SemibluffDraw, raw.SemibluffDraw)
	setFloat(&t.BaselineBluffPct, raw.BaselineBluffPct)
	setFloat(&t.OneCheckBluffPct, raw.OneCheckBluffPct)
	return t, nil
}
