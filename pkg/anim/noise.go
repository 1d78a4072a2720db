package anim

import "math"

// Procedural value noise used by the surface engine's displacement map.
// Deterministic for a given input, no allocation per sample.

func hash3(x, y, z int) float64 {
	h := uint32(x)*374761393 + uint32(y)*668265263 + uint32(z)*2147483647
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return float64(h) / float64(math.MaxUint32)
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// valueNoise samples trilinear-interpolated lattice noise in [0,1]
func valueNoise(p vec3) float64 {
	x0, y0, z0 := math.Floor(p.X), math.Floor(p.Y), math.Floor(p.Z)
	fx := smoothstep(p.X - x0)
	fy := smoothstep(p.Y - y0)
	fz := smoothstep(p.Z - z0)
	ix, iy, iz := int(x0), int(y0), int(z0)

	c000 := hash3(ix, iy, iz)
	c100 := hash3(ix+1, iy, iz)
	c010 := hash3(ix, iy+1, iz)
	c110 := hash3(ix+1, iy+1, iz)
	c001 := hash3(ix, iy, iz+1)
	c101 := hash3(ix+1, iy, iz+1)
	c011 := hash3(ix, iy+1, iz+1)
	c111 := hash3(ix+1, iy+1, iz+1)

	x00 := lerp(c000, c100, fx)
	x10 := lerp(c010, c110, fx)
	x01 := lerp(c001, c101, fx)
	x11 := lerp(c011, c111, fx)

	y0v := lerp(x00, x10, fy)
	y1v := lerp(x01, x11, fy)

	return lerp(y0v, y1v, fz)
}

// ridged folds noise around its midpoint, producing sharp crests
func ridged(p vec3) float64 {
	n := valueNoise(p)
	return 1 - math.Abs(2*n-1)
}

// ridgedFBM layers octaves of ridged noise, each with doubled frequency and
// halved amplitude. The result stays in [0,1].
func ridgedFBM(p vec3, octaves int) float64 {
	sum := 0.0
	amp := 0.5
	freq := 1.0
	norm := 0.0
	for i := 0; i < octaves; i++ {
		sum += amp * ridged(p.scale(freq))
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	if norm < 1e-9 {
		return 0
	}
	return sum / norm
}
