package scoring

// Options selects the configurable scoring strategies. The zero value uses
// ScaleGraded and InvestmentAgeBased.
type Options struct {
	Scale      ScalePolicy      `json:"scale"`
	Investment InvestmentMethod `json:"investmentMethod"`
}

// DefaultOptions returns the default strategies.
func DefaultOptions() Options {
	return Options{Scale: ScaleGraded, Investment: InvestmentAgeBased}
}

// Assessment is the fully derived result of one recompute.
type Assessment struct {
	Profile    Profile    `json:"profile"`
	Checklist  Checklist  `json:"checklist"`
	Allocation Allocation `json:"allocation"`
	Report     Report     `json:"report"`
	Options    Options    `json:"options"`
}

// Items returns the scored checklist rows in display order.
func (a Assessment) Items() []Item {
	return a.Checklist.Items()
}

// Recompute derives every target, score and gap from the inputs and
// aggregates the report. Profile-backed rows take their current status from
// the profile whenever the client entered one, zero included. The input
// checklist is not modified.
func Recompute(profile Profile, checklist Checklist, investments InvestmentOptions, opts Options) Assessment {
	if opts.Investment == "" {
		opts.Investment = InvestmentAgeBased
	}
	if opts.Scale.Thresholds == ([4]float64{}) {
		opts.Scale = ScaleGraded
	}

	out := NewChecklist()
	for _, item := range checklist.Items() {
		seeded, _ := out.Get(item.Kind)
		seeded.Current = item.Current
		out.set(seeded)
	}

	allocation := ScoreAllocation(investments, profile.Age, opts.Investment, opts.Scale)

	for _, kind := range AllItemKinds() {
		item, _ := out.Get(kind)
		if v, _, entered := profile.currentFor(kind); entered {
			item.Current = v
		}
		item.Target = ResolveTarget(profile, kind)
		if kind == InvestmentDiversification {
			item.Current = Mix(allocation)
			item.Score = allocation.Score
		}
		out.set(ScoreItem(item, opts.Scale))
	}

	return Assessment{
		Profile:    profile,
		Checklist:  out,
		Allocation: allocation,
		Report:     Aggregate(out.Items()),
		Options:    opts,
	}
}
