package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ehimavote/evote/internal/server/documents"
	"gopkg.in/yaml.v3"
)

// Seed is a YAML fixture of accounts and their profile documents:
//
//	collection: E-HimaVote
//	users:
//	  - email: ada@example.com
//	    password: secret123
//	    local_id: ada
//	    profile:
//	      name: Ada
//	      nim: 42
//	      study_program: CS
//	      batch: 21
//	  - email: off@example.com
//	    password: secret123
//	    disabled: true
type Seed struct {
	Collection string     `yaml:"collection"`
	Users      []SeedUser `yaml:"users"`
}

type SeedUser struct {
	Email    string       `yaml:"email"`
	Password string       `yaml:"password"`
	LocalID  string       `yaml:"local_id"`
	Disabled bool         `yaml:"disabled"`
	Profile  *SeedProfile `yaml:"profile"`
}

type SeedProfile struct {
	Name         string `yaml:"name"`
	NIM          int64  `yaml:"nim"`
	StudyProgram string `yaml:"study_program"`
	Batch        int64  `yaml:"batch"`
}

func ParseSeed(r io.Reader) (*Seed, error) {
	var s Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if s.Collection == "" {
		s.Collection = "E-HimaVote"
	}
	return &s, nil
}

func LoadSeed(path string) (*Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseSeed(f)
}

// ApplySeed creates every seeded account and writes the profile documents.
func (app *App) ApplySeed(ctx context.Context, s *Seed) error {
	for _, u := range s.Users {
		user, err := app.userService.Create(ctx, u.LocalID, u.Email, u.Password, u.Disabled)
		if err != nil {
			return fmt.Errorf("seed user %q: %w", u.Email, err)
		}
		if u.Profile == nil {
			continue
		}

		name := documents.Name(app.config.ProjectID, "(default)", s.Collection, user.ID)
		if _, err := app.documentService.Patch(ctx, name, u.Profile.fields()); err != nil {
			return fmt.Errorf("seed profile %q: %w", u.Email, err)
		}
	}

	app.logger.Info(ctx, "seed applied", "users", len(s.Users))
	return nil
}

func (p *SeedProfile) fields() map[string]json.RawMessage {
	str := func(v string) json.RawMessage {
		b, _ := json.Marshal(map[string]string{"stringValue": v})
		return b
	}
	num := func(v int64) json.RawMessage {
		b, _ := json.Marshal(map[string]string{"integerValue": strconv.FormatInt(v, 10)})
		return b
	}
	return map[string]json.RawMessage{
		"name":         str(p.Name),
		"nim":          num(p.NIM),
		"studyProgram": str(p.StudyProgram),
		"batch":        num(p.Batch),
	}
}
