package services

import (
	"context"
	"testing"

	"github.com/ehimavote/evote/internal/client/models"
	"github.com/ehimavote/evote/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidates(t *testing.T) {
	svc := NewVoteService(&fakeSession{}, logging.Discard())

	got := svc.Candidates()
	require.Len(t, got, 2)
	assert.Equal(t, "Paslon 1", got[0].Label())
	assert.Equal(t, "Paslon 2", got[1].Label())

	got[0].Number = 99
	assert.Equal(t, 1, svc.Candidates()[0].Number)
}

func TestVote(t *testing.T) {
	complete := &fakeSession{status: models.AuthStatus{IsAuthenticated: true, UserID: "u1", HasCompletedProfile: true}}
	incomplete := &fakeSession{status: models.AuthStatus{IsAuthenticated: true, UserID: "u1"}}

	pair, err := NewVoteService(complete, logging.Discard()).Vote(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Paslon 2", pair.Label())

	_, err = NewVoteService(complete, logging.Discard()).Vote(context.Background(), 3)
	assert.ErrorIs(t, err, ErrUnknownCandidate)

	_, err = NewVoteService(incomplete, logging.Discard()).Vote(context.Background(), 1)
	assert.ErrorIs(t, err, ErrProfileIncomplete)

	_, err = NewVoteService(&fakeSession{}, logging.Discard()).Vote(context.Background(), 1)
	assert.ErrorIs(t, err, ErrLoggedOut)
}
