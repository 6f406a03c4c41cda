package audio

// EstimateCost returns the transcription cost in USD for a recording of the
// given length at the given per-minute rate. Pure: duration × rate.
func EstimateCost(durationMinutes, ratePerMinuteUSD float64) float64 {
	return durationMinutes * ratePerMinuteUSD
}
