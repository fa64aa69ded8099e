package scenario

import (
	"fmt"
	"math"

	"unitsight/internal/config"
	"unitsight/internal/geometry"
)

// BuiltIn returns small hand-made layouts useful for demos and smoke tests.
func BuiltIn() map[string]config.Scenario {
	return map[string]config.Scenario{
		"duel": {
			Vision: config.VisionConfig{ViewAngle: 180, Distance: 5},
			Units: []config.UnitConfig{
				{Name: "west", Position: geometry.Point{X: 0, Y: 0}, ViewDirection: geometry.Point{X: 1, Y: 0}},
				{Name: "east", Position: geometry.Point{X: 3, Y: 0}, ViewDirection: geometry.Point{X: -1, Y: 0}},
			},
		},
		"ring": ring(8, 3),
		"patrol": {
			Vision: config.VisionConfig{ViewAngle: 300, Distance: 4},
			Units: []config.UnitConfig{
				{Name: "lead", Position: geometry.Point{X: 0, Y: 0}, ViewDirection: geometry.Point{X: 0, Y: 1}},
				{Name: "left", Position: geometry.Point{X: -1.5, Y: -1}, ViewDirection: geometry.Point{X: 0, Y: 1}},
				{Name: "right", Position: geometry.Point{X: 1.5, Y: -1}, ViewDirection: geometry.Point{X: 0, Y: 1}},
				{Name: "rear", Position: geometry.Point{X: 0, Y: -3}, ViewDirection: geometry.Point{X: 0, Y: -1}},
			},
		},
	}
}

// ring places n units on a circle, all facing its centre.
func ring(n int, radius float64) config.Scenario {
	sc := config.Scenario{Vision: config.VisionConfig{ViewAngle: 100, Distance: 2*radius + 0.5}}
	for i := 0; i < n; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		sc.Units = append(sc.Units, config.UnitConfig{
			Name:          fmt.Sprintf("r%d", i),
			Position:      geometry.Point{X: radius * cos, Y: radius * sin},
			ViewDirection: geometry.Point{X: -cos, Y: -sin},
		})
	}
	return sc
}
