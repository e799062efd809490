package runner

import "math"

// registerNearMiss bumps the combo. Each obstacle counts at most once.
func (s *State) registerNearMiss(o *Obstacle) {
	if o.NearMissChecked {
		return
	}
	o.NearMissChecked = true
	s.Combo++
}

// addPass awards 1 + combo*bonus the first time o is passed.
func (s *State) addPass(o *Obstacle, bonus float64) {
	if o.Passed {
		return
	}
	o.Passed = true
	s.Score += 1 + float64(s.Combo)*bonus
}

// FinalScore is the score as shown and submitted.
func (s *State) FinalScore() int {
	return int(math.Floor(s.Score))
}
