package engine

import "fmt"

// displacementMatrix builds the antisymmetric n×n matrix of pairwise
// displacements, R[i][j] = Pos[j] - Pos[i], with a zero diagonal. A zero
// off-diagonal entry means two distinct bodies coincide and the step must
// not proceed to a division by zero.
func (s *System) displacementMatrix() ([][]Vec2, error) {
	n := s.N()
	R := make([][]Vec2, n)
	for i := 0; i < n; i++ {
		R[i] = make([]Vec2, n)
		for j := 0; j < n; j++ {
			R[i][j] = s.Pos[j].Sub(s.Pos[i])
			if i != j && R[i][j].IsZero() {
				return nil, fmt.Errorf("%w: %q and %q at (%v, %v)",
					ErrCoincidentBodies, s.Labels[i], s.Labels[j], s.Pos[i].X, s.Pos[i].Y)
			}
		}
	}
	return R, nil
}

// coefficientMatrix builds the symmetric matrix of pairwise gravitational
// strengths, K[i][j] = geff * m_i * m_j / |R[i][j]|^3. Diagonal entries are
// computed against a unit distance so the division is defined; they pair
// with the zero diagonal of R and drop out of the force sums.
func (s *System) coefficientMatrix(R [][]Vec2) [][]float64 {
	n := s.N()
	K := make([][]float64, n)
	for i := 0; i < n; i++ {
		K[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			d := 1.0
			if i != j {
				d = R[i][j].Norm()
			}
			K[i][j] = s.geff * s.Mass[i] * s.Mass[j] / (d * d * d)
		}
	}
	return K
}

// UpdateAccelerations recomputes every body's acceleration from the current
// positions: Hadamard product of the displacement and coefficient matrices,
// row sums for net force, divided by each body's mass. On error the system
// is untouched. Row partitions only ever read positions and masses, so every
// worker observes the same pre-step snapshot.
func (s *System) UpdateAccelerations() error {
	R, err := s.displacementMatrix()
	if err != nil {
		return err
	}
	K := s.coefficientMatrix(R)

	n := s.N()
	parallelRows(n, func(start, end int) {
		for i := start; i < end; i++ {
			var f Vec2
			for j := 0; j < n; j++ {
				f = f.Add(R[i][j].Scale(K[i][j]))
			}
			s.Acc[i] = f.Scale(1 / s.Mass[i])
		}
	})
	return nil
}
