package value

import "math"

// Lerp linearly interpolates numeric-like values by t (0 at a, 1 at b).
// Non-numeric kinds (Bool, Text, Record, Enum, Array, List, Tuple) use
// step-hold instead: a is returned for t < 0.5, b otherwise, matching a
// discrete track's "no blending" playback behavior (specification §4.1).
func Lerp(a, b Value, t float32) Value {
	if a.Kind != b.Kind {
		return stepHold(a, b, t)
	}
	switch a.Kind {
	case KindFloat:
		return Float32(lerpF(a.Float, b.Float, t))
	case KindVec2:
		return Vec2Value(lerpF(a.Vec2[0], b.Vec2[0], t), lerpF(a.Vec2[1], b.Vec2[1], t))
	case KindVec3:
		return Vec3Value(
			lerpF(a.Vec3[0], b.Vec3[0], t),
			lerpF(a.Vec3[1], b.Vec3[1], t),
			lerpF(a.Vec3[2], b.Vec3[2], t),
		)
	case KindVec4:
		return Vec4Value(
			lerpF(a.Vec4[0], b.Vec4[0], t),
			lerpF(a.Vec4[1], b.Vec4[1], t),
			lerpF(a.Vec4[2], b.Vec4[2], t),
			lerpF(a.Vec4[3], b.Vec4[3], t),
		)
	case KindColorRgba:
		return ColorValue(
			lerpF(a.Color[0], b.Color[0], t),
			lerpF(a.Color[1], b.Color[1], t),
			lerpF(a.Color[2], b.Color[2], t),
			lerpF(a.Color[3], b.Color[3], t),
		)
	case KindQuat:
		x, y, z, w := NLerpQuat(a.Quat, b.Quat, t)
		return QuatValue(x, y, z, w)
	case KindVector:
		if len(a.Vector) != len(b.Vector) {
			return stepHold(a, b, t)
		}
		xs := make([]float32, len(a.Vector))
		for i := range xs {
			xs[i] = lerpF(a.Vector[i], b.Vector[i], t)
		}
		return VectorValue(xs)
	case KindTransform:
		return LerpTransform(a, b, t)
	default:
		return stepHold(a, b, t)
	}
}

func stepHold(a, b Value, t float32) Value {
	if t < 0.5 {
		return a
	}
	return b
}

func lerpF(a, b, t float32) float32 {
	return a + (b-a)*t
}

// NLerpQuat performs a shortest-arc normalized-lerp between two raw
// quaternions (x, y, z, w). The sign of b is flipped before interpolating
// whenever a·b < 0, so blending always takes the short way around — the
// same fix-up every quaternion-blending teacher/example in the pack
// applies before a plain component-wise lerp. The result is renormalized;
// a degenerate (near-zero) result falls back to a unchanged.
func NLerpQuat(a, b [4]float32, t float32) (x, y, z, w float32) {
	bx, by, bz, bw := b[0], b[1], b[2], b[3]
	dot := a[0]*bx + a[1]*by + a[2]*bz + a[3]*bw
	if dot < 0 {
		bx, by, bz, bw = -bx, -by, -bz, -bw
	}
	x = lerpF(a[0], bx, t)
	y = lerpF(a[1], by, t)
	z = lerpF(a[2], bz, t)
	w = lerpF(a[3], bw, t)
	n := float32(math.Sqrt(float64(x*x + y*y + z*z + w*w)))
	if n < 1e-12 {
		return a[0], a[1], a[2], a[3]
	}
	return x / n, y / n, z / n, w / n
}

// NormalizeQuat renormalizes a raw quaternion to unit length, used after a
// multi-instance WeightedAccumulate sum of quaternions has been averaged
// by Scale. A degenerate (near-zero) input is returned unchanged, since it
// carries no orientation to normalize toward.
func NormalizeQuat(x, y, z, w float32) (nx, ny, nz, nw float32) {
	n := float32(math.Sqrt(float64(x*x + y*y + z*z + w*w)))
	if n < 1e-12 {
		return x, y, z, w
	}
	return x / n, y / n, z / n, w / n
}

// LerpTransform blends translation and scale componentwise and rotation via
// NLerpQuat — the TRS decomposition specification §4.1 describes for
// skeletal/transform tracks. Nil transforms are treated as the identity.
func LerpTransform(a, b Value, t float32) Value {
	at := a.Transform
	bt := b.Transform
	if at == nil {
		at = &TransformValue{Scale: [3]float32{1, 1, 1}, Rotation: [4]float32{0, 0, 0, 1}}
	}
	if bt == nil {
		bt = &TransformValue{Scale: [3]float32{1, 1, 1}, Rotation: [4]float32{0, 0, 0, 1}}
	}
	translation := [3]float32{
		lerpF(at.Translation[0], bt.Translation[0], t),
		lerpF(at.Translation[1], bt.Translation[1], t),
		lerpF(at.Translation[2], bt.Translation[2], t),
	}
	scale := [3]float32{
		lerpF(at.Scale[0], bt.Scale[0], t),
		lerpF(at.Scale[1], bt.Scale[1], t),
		lerpF(at.Scale[2], bt.Scale[2], t),
	}
	rx, ry, rz, rw := NLerpQuat(at.Rotation, bt.Rotation, t)
	return TransformFromParts(translation, [4]float32{rx, ry, rz, rw}, scale)
}

// WeightedAccumulate adds weight*delta on top of base for every numeric
// component, used by the animation engine's multi-instance blending pass
// (specification §4.1) to fold additive/override instances onto an
// accumulator without allocating per component. base and delta must share
// Kind; mismatches return base unchanged.
func WeightedAccumulate(base, delta Value, weight float32) Value {
	if base.Kind != delta.Kind {
		return base
	}
	switch base.Kind {
	case KindFloat:
		return Float32(base.Float + delta.Float*weight)
	case KindVec2:
		return Vec2Value(base.Vec2[0]+delta.Vec2[0]*weight, base.Vec2[1]+delta.Vec2[1]*weight)
	case KindVec3:
		return Vec3Value(
			base.Vec3[0]+delta.Vec3[0]*weight,
			base.Vec3[1]+delta.Vec3[1]*weight,
			base.Vec3[2]+delta.Vec3[2]*weight,
		)
	case KindVec4:
		return Vec4Value(
			base.Vec4[0]+delta.Vec4[0]*weight,
			base.Vec4[1]+delta.Vec4[1]*weight,
			base.Vec4[2]+delta.Vec4[2]*weight,
			base.Vec4[3]+delta.Vec4[3]*weight,
		)
	case KindColorRgba:
		return ColorValue(
			base.Color[0]+delta.Color[0]*weight,
			base.Color[1]+delta.Color[1]*weight,
			base.Color[2]+delta.Color[2]*weight,
			base.Color[3]+delta.Color[3]*weight,
		)
	case KindQuat:
		dx, dy, dz, dw := delta.Quat[0], delta.Quat[1], delta.Quat[2], delta.Quat[3]
		if base.Quat[0]*dx+base.Quat[1]*dy+base.Quat[2]*dz+base.Quat[3]*dw < 0 {
			dx, dy, dz, dw = -dx, -dy, -dz, -dw
		}
		return QuatValue(
			base.Quat[0]+dx*weight,
			base.Quat[1]+dy*weight,
			base.Quat[2]+dz*weight,
			base.Quat[3]+dw*weight,
		)
	case KindVector:
		if len(base.Vector) != len(delta.Vector) {
			return base
		}
		xs := make([]float32, len(base.Vector))
		for i := range xs {
			xs[i] = base.Vector[i] + delta.Vector[i]*weight
		}
		return VectorValue(xs)
	default:
		return base
	}
}

// ZeroLike returns the additive-identity Value for v's kind and shape: a
// scalar/vector/color of zeros, a quaternion of zeros (not the identity
// rotation — it is only ever used as an accumulator seed, immediately
// scaled back down in Scale), or v itself unchanged for kinds
// WeightedAccumulate does not support.
func ZeroLike(v Value) Value {
	switch v.Kind {
	case KindFloat:
		return Float32(0)
	case KindVec2:
		return Vec2Value(0, 0)
	case KindVec3:
		return Vec3Value(0, 0, 0)
	case KindVec4:
		return Vec4Value(0, 0, 0, 0)
	case KindQuat:
		return QuatValue(0, 0, 0, 0)
	case KindColorRgba:
		return ColorValue(0, 0, 0, 0)
	case KindVector:
		return VectorValue(make([]float32, len(v.Vector)))
	default:
		return v
	}
}

// Scale multiplies every numeric component of v by factor — used to turn
// a WeightedAccumulate sum into a weighted average (factor = 1/totalWeight).
// Non-numeric kinds are returned unchanged.
func Scale(v Value, factor float32) Value {
	switch v.Kind {
	case KindFloat:
		return Float32(v.Float * factor)
	case KindVec2:
		return Vec2Value(v.Vec2[0]*factor, v.Vec2[1]*factor)
	case KindVec3:
		return Vec3Value(v.Vec3[0]*factor, v.Vec3[1]*factor, v.Vec3[2]*factor)
	case KindVec4:
		return Vec4Value(v.Vec4[0]*factor, v.Vec4[1]*factor, v.Vec4[2]*factor, v.Vec4[3]*factor)
	case KindQuat:
		return QuatValue(v.Quat[0]*factor, v.Quat[1]*factor, v.Quat[2]*factor, v.Quat[3]*factor)
	case KindColorRgba:
		return ColorValue(v.Color[0]*factor, v.Color[1]*factor, v.Color[2]*factor, v.Color[3]*factor)
	case KindVector:
		xs := make([]float32, len(v.Vector))
		for i, x := range v.Vector {
			xs[i] = x * factor
		}
		return VectorValue(xs)
	default:
		return v
	}
}
