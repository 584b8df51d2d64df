package pattern

import (
	"hash/fnv"
	"time"
)

// Built-in pattern library used by the simulated analyzer. A real
// deployment would replace Simulate with computer-vision fitting;
// the records below keep the service exercisable without it.
var builtins = []Record{
	{
		ID:         "KLM_001",
		Type:       "Pulli Kolam",
		Complexity: "Medium",
		Symmetry:   "Bilateral",
		Equations: Equations{
			XFunction: "-61.26*cos(0.99*t + 13.35) + 199.12",
			YFunction: "-61.26*sin(0.99*t + 13.39) + 199.12",
			Domain:    [2]float64{0, 6.28},
			RSquared:  0.947,
		},
		Grid: Grid{
			Type:       "square",
			Dimensions: [2]int{5, 5},
			Dots: []Point{
				{100, 100}, {150, 100}, {200, 100}, {250, 100}, {300, 100},
				{100, 150}, {150, 150}, {200, 150}, {250, 150}, {300, 150},
				{100, 200}, {150, 200}, {200, 200}, {250, 200}, {300, 200},
				{100, 250}, {150, 250}, {200, 250}, {250, 250}, {300, 250},
				{100, 300}, {150, 300}, {200, 300}, {250, 300}, {300, 300},
			},
		},
		Paths: []Path{{
			{150, 150}, {200, 150}, {250, 150}, {250, 200},
			{250, 250}, {200, 250}, {150, 250}, {150, 200}, {150, 150},
		}},
	},
	{
		ID:         "KLM_002",
		Type:       "Kambi Kolam",
		Complexity: "High",
		Symmetry:   "Radial (8-fold)",
		Equations: Equations{
			XFunction: "80*cos(t) + 40*cos(3*t) + 200",
			YFunction: "80*sin(t) + 40*sin(3*t) + 200",
			Domain:    [2]float64{0, 6.28},
			RSquared:  0.923,
		},
		Grid: Grid{
			Type:       "circular",
			Dimensions: [2]int{7, 7},
			Dots: []Point{
				{200, 120}, {240, 140}, {260, 180}, {260, 220},
				{240, 260}, {200, 280}, {160, 260}, {140, 220},
				{140, 180}, {160, 140}, {200, 200},
			},
		},
		Paths: []Path{{
			{200, 120}, {260, 180}, {260, 220}, {200, 280},
			{140, 220}, {140, 180}, {200, 120},
		}},
	},
	{
		ID:         "KLM_003",
		Type:       "Sikku Kolam",
		Complexity: "Low",
		Symmetry:   "Rotational (4-fold)",
		Equations: Equations{
			XFunction: "50*cos(t) + 20*cos(5*t) + 200",
			YFunction: "50*sin(t) + 20*sin(5*t) + 200",
			Domain:    [2]float64{0, 6.28},
			RSquared:  0.891,
		},
		Grid: Grid{
			Type:       "square",
			Dimensions: [2]int{3, 3},
			Dots: []Point{
				{150, 150}, {200, 150}, {250, 150},
				{150, 200}, {200, 200}, {250, 200},
				{150, 250}, {200, 250}, {250, 250},
			},
		},
		Paths: []Path{{
			{200, 150}, {250, 200}, {200, 250},
			{150, 200}, {200, 150},
		}},
	},
}

// Simulate picks a built-in pattern by filename hash so repeated
// uploads of the same file stay deterministic, and stamps analysis
// metadata onto the copy.
func Simulate(filename string, now time.Time) Record {
	h := fnv.New32a()
	h.Write([]byte(filename))
	rec := builtins[int(h.Sum32())%len(builtins)]

	rec.AnalyzedAt = now.Format(time.RFC3339)
	rec.SourceFilename = filename
	return rec
}
