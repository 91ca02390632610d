package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ehimavote/evote/internal/client/models"
	"github.com/ehimavote/evote/internal/client/services"
)

var confirmFn = Confirm

// Vote confirms and casts a vote for the pair given as the first argument.
func (a *App) Vote(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: vote <number>")
	}
	number, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid candidate number %q", args[0])
	}
	if _, ok := models.FindCandidatePair(number); !ok {
		return fmt.Errorf("%w: %d", services.ErrUnknownCandidate, number)
	}

	ok, err := confirmFn(a.reader, fmt.Sprintf("Apakah Anda yakin memilih Paslon %d?", number), a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println("Vote cancelled.")
		return nil
	}

	pair, err := a.voteService.Vote(ctx, number)
	if err != nil {
		return err
	}

	a.println(fmt.Sprintf("Terima kasih telah memilih %s!", pair.Label()))
	return nil
}
