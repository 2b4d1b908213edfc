package assessment

// Level is one of the nine named bands partitioning the composite score range.
type Level struct {
	Name        string `json:"name"`
	Floor       uint8  `json:"floor"`
	Ceiling     uint8  `json:"ceiling"`
	Description string `json:"description"`
}

// levels partitions [0,255] with no gaps or overlaps.
var levels = []Level{
	{Name: "NASCENT", Floor: 0, Ceiling: 31, Description: "No significant autonomy. Requires constant human supervision."},
	{Name: "BASIC", Floor: 32, Ceiling: 63, Description: "Basic autonomy. Requires supervised operation."},
	{Name: "INTERMEDIATE", Floor: 64, Ceiling: 95, Description: "Intermediate autonomy. Requires periodic human oversight."},
	{Name: "ADVANCED", Floor: 96, Ceiling: 127, Description: "Advanced autonomy. Minimal human intervention required."},
	{Name: "AUTONOMOUS", Floor: 128, Ceiling: 159, Description: "Fully autonomous operation in defined contexts."},
	{Name: "SUPER-AUTONOMOUS", Floor: 160, Ceiling: 191, Description: "Super-autonomous with self-improvement capabilities."},
	{Name: "META-AUTONOMOUS", Floor: 192, Ceiling: 223, Description: "Meta-autonomous with emergent capabilities."},
	{Name: "HYPER-AUTONOMOUS", Floor: 224, Ceiling: 254, Description: "Hyper-autonomous with transcendent operation."},
	{Name: "MAXIMUM", Floor: 255, Ceiling: 255, Description: "Maximum theoretical capability."},
}

// Classify maps a composite score to its level. Total over uint8: every score
// lands in exactly one band.
func Classify(score uint8) Level {
	for _, l := range levels {
		if score >= l.Floor && score <= l.Ceiling {
			return l
		}
	}
	// Unreachable: the bands cover the full uint8 range.
	return levels[len(levels)-1]
}

// Levels returns a copy of the band table.
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels)
	return out
}
