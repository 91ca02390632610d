package services

import (
	"context"
	"fmt"

	"github.com/ehimavote/evote/internal/client/models"
	"github.com/ehimavote/evote/internal/logging"
)

// VoteService lists the ballot and confirms a choice. Votes are not recorded
// anywhere.
type VoteService interface {
	Candidates() []models.CandidatePair
	Vote(ctx context.Context, number int) (models.CandidatePair, error)
}

type voteService struct {
	session SessionManager
	logger  logging.Logger
}

func NewVoteService(session SessionManager, logger logging.Logger) VoteService {
	return &voteService{session: session, logger: logger}
}

func (v *voteService) Candidates() []models.CandidatePair {
	out := make([]models.CandidatePair, len(models.CandidatePairs))
	copy(out, models.CandidatePairs)
	return out
}

func (v *voteService) Vote(ctx context.Context, number int) (models.CandidatePair, error) {
	switch v.session.Status().State() {
	case models.StateLoggedInComplete:
	case models.StateLoggedInIncompleteProfile:
		return models.CandidatePair{}, ErrProfileIncomplete
	default:
		return models.CandidatePair{}, ErrLoggedOut
	}
	pair, ok := models.FindCandidatePair(number)
	if !ok {
		return models.CandidatePair{}, fmt.Errorf("%w: %d", ErrUnknownCandidate, number)
	}
	v.logger.Info(ctx, "vote confirmed", "candidate", pair.Label())
	return pair, nil
}
