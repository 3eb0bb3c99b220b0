package sim

// gravityStep decays height and hands a grounded run to recovery
// It runs on every gravity interval, including at height zero, so the bottom check
// also catches runs grounded by divine punishment or malfunction
func (s *Simulation) gravityStep() {
	if h := s.run.Height(); h > 0 {
		s.run.fallTime += s.cfg.FallTimeStep * s.prog.SpeedMultiplier
		decay := (s.cfg.BaseGravity + h*s.cfg.GravityHeightScale) * (1 + s.run.fallTime*s.cfg.FallTimeAccel)
		s.run.ApplyDecay(decay)
	}
	s.checkBottom()
}

// checkBottom fires the bottom trigger once per run, when a run that left the
// bottom is back at height zero
func (s *Simulation) checkBottom() {
	if s.run.Height() > 0 || !s.run.hasLeftBottom {
		return
	}
	if s.lifecycle.State() == PhaseRecovering {
		return
	}
	s.lifecycle.Fire(triggerBottom)
}
