package models

import "fmt"

// CandidatePair is a chairperson and vice-chairperson running together.
type CandidatePair struct {
	Number int
}

func (c CandidatePair) Label() string {
	return fmt.Sprintf("Paslon %d", c.Number)
}

// CandidatePairs lists the pairs on the ballot.
var CandidatePairs = []CandidatePair{{Number: 1}, {Number: 2}}

// FindCandidatePair returns the pair with the given ballot number.
func FindCandidatePair(number int) (CandidatePair, bool) {
	for _, c := range CandidatePairs {
		if c.Number == number {
			return c, true
		}
	}
	return CandidatePair{}, false
}
