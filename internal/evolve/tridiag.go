package evolve

// solveTridiagonal solves the system with sub-diagonal lower (lower[0]
// unused), diagonal diag and super-diagonal upper (upper[n-1] unused) by the
// Thomas algorithm, writing the solution to x. scratch must hold n values.
// The system must be diagonally dominant.
func solveTridiagonal(lower, diag, upper, rhs, x, scratch []float64) {
	n := len(diag)
	if n == 0 {
		return
	}
	c := scratch[:n]

	beta := diag[0]
	c[0] = upper[0] / beta
	x[0] = rhs[0] / beta
	for i := 1; i < n; i++ {
		beta = diag[i] - lower[i]*c[i-1]
		if i < n-1 {
			c[i] = upper[i] / beta
		}
		x[i] = (rhs[i] - lower[i]*x[i-1]) / beta
	}
	for i := n - 2; i >= 0; i-- {
		x[i] -= c[i] * x[i+1]
	}
}
