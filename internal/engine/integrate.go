package engine

// UpdatePositions advances positions by one step using the accelerations
// from the preceding UpdateAccelerations call:
//
//	p = p0 + v0*dt + 0.5*a*dt^2
//
// When history is tracked, an independent copy of the new positions is
// appended.
func (s *System) UpdatePositions() {
	dt := s.Dt
	half := 0.5 * dt * dt
	for i := range s.Pos {
		s.Pos[i] = s.Pos[i].Add(s.Vel[i].Scale(dt)).Add(s.Acc[i].Scale(half))
	}
	if s.History != nil {
		s.snapshot()
	}
}

// UpdateVelocities advances velocities using the same start-of-step
// accelerations, after positions have already moved:
//
//	v = v0 + a*dt
//
// This ordering is semi-implicit Euler on purpose; there is no half-step
// acceleration recompute, and changing that would change every trajectory.
func (s *System) UpdateVelocities() {
	for i := range s.Vel {
		s.Vel[i] = s.Vel[i].Add(s.Acc[i].Scale(s.Dt))
	}
}

// Step runs one full step: accelerate, move, accelerate velocities, in that
// order. A coincident-body failure aborts before any position or velocity
// write, leaving the system in its exact pre-step state.
func (s *System) Step() error {
	if err := s.UpdateAccelerations(); err != nil {
		return err
	}
	s.UpdatePositions()
	s.UpdateVelocities()
	return nil
}
