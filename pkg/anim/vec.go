package anim

import "math"

type vec3 struct {
	X, Y, Z float64
}

func (v vec3) add(o vec3) vec3 {
	return vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v vec3) sub(o vec3) vec3 {
	return vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v vec3) scale(s float64) vec3 {
	return vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v vec3) dot(o vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v vec3) cross(o vec3) vec3 {
	return vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v vec3) length() float64 {
	return math.Sqrt(v.dot(v))
}

// normalized guards the near-zero case rather than dividing by zero
func (v vec3) normalized() vec3 {
	l := v.length()
	if l < 1e-9 {
		return vec3{0, 0, 1}
	}
	return v.scale(1 / l)
}

func (v vec3) rotateY(angle float64) vec3 {
	s, c := math.Sin(angle), math.Cos(angle)
	return vec3{v.X*c + v.Z*s, v.Y, -v.X*s + v.Z*c}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
