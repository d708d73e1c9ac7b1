// Package core has the timeline engine: grid math, interpolation, resampling,
// cascading and the store transitions that tie them together.
package core

// SampleCount returns the index of the last grid tick for the given duration
// and sample rate. A timeline holds SampleCount+1 samples, one per tick.
// Every component derives grid geometry from this single definition; the last
// sample boundary is where divergent math bites.
func SampleCount(durationSec int, sampleRateMs int64) int {
	if durationSec <= 0 || sampleRateMs <= 0 {
		return 0
	}
	return int(int64(durationSec) * 1000 / sampleRateMs)
}

// GridTimes returns every grid timestamp for the given duration and rate:
// i*sampleRateMs for i in [0, SampleCount].
func GridTimes(durationSec int, sampleRateMs int64) []int64 {
	count := SampleCount(durationSec, sampleRateMs)
	times := make([]int64, count+1)
	for i := range times {
		times[i] = int64(i) * sampleRateMs
	}
	return times
}

// MaxGridTimeMs returns the timestamp of the last grid tick.
func MaxGridTimeMs(durationSec int, sampleRateMs int64) int64 {
	return int64(SampleCount(durationSec, sampleRateMs)) * sampleRateMs
}
