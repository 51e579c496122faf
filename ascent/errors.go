package ascent

import "errors"

// ErrNonConvergence is wrapped by errors returned when a search
// primitive exhausts its bound without finding a valid answer — under
// valid inputs this should be unreachable (spec §7.2 calls it "should be
// unreachable ... if hit, signal a bug"), but a mix with too little
// oxygen to off-gas at a given stop can genuinely trigger it.
var ErrNonConvergence = errors.New("ascent: search did not converge")
