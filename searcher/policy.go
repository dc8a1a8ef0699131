package searcher

import "math"

type uct struct {
	c    float64
	logN float64
}

func newUCT(c float64, N int) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{c: c, logN: math.Log(float64(N))}
}

func (u uct) evaluate(q float64, n int, h float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + c*sqrt(ln(N)/n) + h/n
	visits := float64(n)
	return q/visits + u.c*math.Sqrt(u.logN/visits) + h/visits
}
