package domain

// SeedPeriod is a Period of the demo timeline
type SeedPeriod struct {
	Label string
	Tone  Tone
}

// DemoPeriods is the sample game used when the editor starts seeded
var DemoPeriods = []SeedPeriod{
	{"The Rise of Machine Learning, Algorithmic Solutions to Humanity's Problems (START)", ToneLight},
	{"An Age of Prosperity, AIs Solve Major World Issues", ToneLight},
	{"Value Drift Causes Breakdown of World Infrastructure, Self-Replicating Machines Threaten Humanity", ToneDark},
	{"Machines Decide to Study and Learn from Humanity, all Humans Are Uploaded into an Eternal Simulation, Effective Immortality (END)", ToneLight},
}

// NewDemoTimeline returns a timeline holding DemoPeriods
func NewDemoTimeline() *Timeline {
	t := NewTimeline()
	for _, p := range DemoPeriods {
		// Appending at the closing divider cannot fail
		_, _ = t.periods.InsertAt(t.periods.Len()-1, NewPeriod(p.Label, p.Tone))
	}
	return t
}
