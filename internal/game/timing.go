package game

import "time"

const TickRate = 20 // ticks per second

// Timing constants for the duel session.
const (
	ResultHold    = 3 * time.Second // victory/defeat screen duration
	InputChanSize = 16
	SaveTimeout   = 5 * time.Second // budget for persisting a finished duel
)

// TickInterval converts a tick rate to the interval between ticks. Rates
// below 1 fall back to TickRate.
func TickInterval(rate int) time.Duration {
	if rate < 1 {
		rate = TickRate
	}
	return time.Second / time.Duration(rate)
}
