package anim

// bezierX and bezierDX evaluate the cubic bezier X(u) and its derivative
// for a curve anchored at (0,0) and (1,1), with interior control points at
// x-coordinates p1 and p2 (the out-handle and in-handle X components).
func bezierX(u, p1, p2 float64) float64 {
	mu := 1 - u
	return 3*mu*mu*u*p1 + 3*mu*u*u*p2 + u*u*u
}

func bezierDX(u, p1, p2 float64) float64 {
	mu := 1 - u
	return 3*p1*mu*mu + 6*(p2-p1)*mu*u + 3*(1-p2)*u*u
}

// solveBezierU finds u ∈ [0,1] such that bezierX(u, p1, p2) == target,
// via 8 Newton iterations with a bisection fallback — grounded on the
// teacher's bounded-iteration, explicit-fallback numerical style (dtw's
// DP recurrence is always bounded by sequence length; dfs.visit's
// explicit state machine never loops unboundedly waiting on a condition).
// Newton falls back to bisection whenever its derivative is too small to
// trust, or a step would leave [0,1].
func solveBezierU(target, p1, p2 float64) float64 {
	if target <= 0 {
		return 0
	}
	if target >= 1 {
		return 1
	}

	lo, hi := 0.0, 1.0
	u := target // initial guess: identity is a reasonable start for typical handles

	for i := 0; i < 8; i++ {
		x := bezierX(u, p1, p2)
		// Maintain a bisection bracket as a fallback, regardless of
		// whether this iteration's Newton step is accepted.
		if x < target {
			lo = u
		} else {
			hi = u
		}

		dx := bezierDX(u, p1, p2)
		if dx < 1e-6 {
			u = (lo + hi) / 2
			continue
		}
		next := u - (x-target)/dx
		if next <= 0 || next >= 1 {
			u = (lo + hi) / 2
			continue
		}
		u = next
	}
	if u < 0 {
		u = 0
	} else if u > 1 {
		u = 1
	}
	return u
}

// easingWeight computes the blend weight y at normalized segment progress
// (specification §4.1 step 4): solve u from the handles' X components so
// that x(u) == progress, then evaluate Y(u) with the same cubic bezier
// shape using the handles' Y components.
func easingWeight(progress float64, out, in BezierHandle) float64 {
	u := solveBezierU(progress, out.X, in.X)
	return bezierX(u, out.Y, in.Y)
}
