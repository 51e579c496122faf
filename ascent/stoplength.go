package ascent

import (
	"fmt"

	"github.com/oceandepth/zhl16gf/gas"
	"github.com/oceandepth/zhl16gf/model"
)

// maxStopMinutes bounds the linear scan in StopLength. It is well above
// any stop a reasonable dive profile would require; hitting it means the
// mix can't off-gas enough to clear the next step (e.g. its oxygen
// fraction is too low for the depth), which StopLength reports as an
// error rather than looping forever.
const maxStopMinutes = 1440

// StopLength returns the minimum whole number of minutes a diver must
// hold at pStop breathing g before the ascent ceiling, evaluated at
// gfNext, is at or shallower than pNext — the find-stop-length search
// from spec §4.3. It implements the linear-scan-then-bisect algorithm:
// a coarse scan in steps of delta minutes locates a window known to
// contain the answer, then bisection narrows it to the exact minute,
// giving O(t/delta + log(delta)) instead of a minute-by-minute scan.
func StopLength(m *model.Model, state model.TissueState, pStop, pNext, gfNext float64, g gas.Mix, delta int) (int, error) {
	if delta <= 0 {
		delta = 64
	}

	valid := func(tMinutes int) bool {
		s := m.Load(state, float64(tMinutes), 0.0, pStop, g)
		return Valid(m, s, gfNext, pNext)
	}

	ts := 0
	for !valid(ts + delta) {
		ts += delta
		if ts > maxStopMinutes {
			return 0, fmt.Errorf("ascent: stop-length search did not converge within %d minutes at %.2f bar breathing %v: %w", maxStopMinutes, pStop, g, ErrNonConvergence)
		}
	}

	lo, hi := ts, ts+delta
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if valid(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}

	return hi, nil
}

// RoundUpToStopTime rounds a minute count up to the nearest multiple of
// minStepMinutes (the configured minimum_deco_stop_time).
func RoundUpToStopTime(minutes, minStepMinutes int) int {
	if minStepMinutes <= 1 {
		return minutes
	}
	if minutes%minStepMinutes == 0 {
		return minutes
	}
	return ((minutes / minStepMinutes) + 1) * minStepMinutes
}
