package cli

import (
	"context"
	"fmt"

	"github.com/ehimavote/evote/internal/client/services"
)

// Profile asks for the personal data fields and submits them.
func (a *App) Profile(ctx context.Context) error {
	var form services.ProfileForm

	prompts := []struct {
		label string
		dst   *string
	}{
		{"Full name", &form.Name},
		{"NIM", &form.NIM},
		{"Study program", &form.StudyProgram},
		{"Batch (year)", &form.Batch},
	}
	for _, p := range prompts {
		v, err := getSimpleText(a.reader, p.label, a.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	if _, err := a.profileService.Submit(ctx, form); err != nil {
		return err
	}

	a.println("Data saved successfully!")
	return nil
}

// Home prints the signed-in user's profile and the ballot.
func (a *App) Home(ctx context.Context) error {
	s := a.status.Status()
	a.println("Welcome, " + s.UserEmail)

	p, err := a.profileService.Load(ctx)
	if err != nil {
		return err
	}
	if p != nil {
		a.println(fmt.Sprintf("  Name:          %s", p.Name))
		a.println(fmt.Sprintf("  NIM:           %d", p.NIM))
		a.println(fmt.Sprintf("  Study program: %s", p.StudyProgram))
		a.println(fmt.Sprintf("  Batch:         %d", p.Batch))
	}

	a.println("Candidates:")
	for _, c := range a.voteService.Candidates() {
		a.println(fmt.Sprintf("  [%d] %s", c.Number, c.Label()))
	}
	a.println("Type 'vote <number>' to cast your vote.")
	return nil
}
