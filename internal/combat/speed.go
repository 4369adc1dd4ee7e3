package combat

import "math"

// GaugeMax is the CurrentSpeed value at which a side may act.
const GaugeMax = 100

// DefaultFillScale is the reference gauge fill rate.
const DefaultFillScale = 0.08

// Increment returns how far a side's gauge advances in one tick.
// A fuller gauge fills faster, and every side advances by at least 1.
func Increment(agility, speed int, fillScale float64) int {
	inc := int(math.Ceil(float64(agility) * (1 + float64(speed)/GaugeMax) * fillScale))
	return max(1, inc)
}

func clampGauge(v int) int {
	return min(max(v, 0), GaugeMax)
}

// accumulate advances p's gauge by one tick. Agility is read fresh each
// call so mid-fight buffs take effect immediately.
func accumulate(p Participant, fillScale float64) {
	speed := clampGauge(GetInt(p, speedNames...))
	agility := GetInt(p, agilityNames...)
	SetInt(p, AttrSpeed, clampGauge(speed+Increment(agility, speed, fillScale)))
}

func gaugeFull(p Participant) bool {
	return GetInt(p, speedNames...) >= GaugeMax
}
