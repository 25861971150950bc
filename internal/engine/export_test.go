package engine

// EnterStep moves a bare State to step.
func (s *State) EnterStep(step Step) { s.advance(step) }
