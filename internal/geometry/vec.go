package geometry

import "math"

// Small fixed-size vector helpers. [Dim]float64 arrays keep the hot
// tensor loops allocation-free.

func addVec(a, b [Dim]float64) [Dim]float64 {
	var out [Dim]float64
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}

func subVec(a, b [Dim]float64) [Dim]float64 {
	var out [Dim]float64
	for i := range out {
		out[i] = a[i] - b[i]
	}
	return out
}

func scaleVec(a [Dim]float64, s float64) [Dim]float64 {
	var out [Dim]float64
	for i := range out {
		out[i] = a[i] * s
	}
	return out
}

func normVec(a [Dim]float64) float64 {
	sum := 0.0
	for _, x := range a {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func midVec(a, b [Dim]float64) [Dim]float64 {
	var out [Dim]float64
	for i := range out {
		out[i] = (a[i] + b[i]) / 2
	}
	return out
}
