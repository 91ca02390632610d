package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/ehimavote/evote/internal/client/models"
	"github.com/ehimavote/evote/internal/logging"
)

// ProfileForm is the raw input of the profile form. NIM and Batch are typed
// as text and must parse as integers.
type ProfileForm struct {
	Name         string
	NIM          string
	StudyProgram string
	Batch        string
}

// Parse validates the form and converts it to a profile.
func (f ProfileForm) Parse() (models.UserProfile, error) {
	name := strings.TrimSpace(f.Name)
	nim := strings.TrimSpace(f.NIM)
	program := strings.TrimSpace(f.StudyProgram)
	batch := strings.TrimSpace(f.Batch)

	if name == "" || nim == "" || program == "" || batch == "" {
		return models.UserProfile{}, invalid("form", "Please fill in all fields")
	}
	n, err := strconv.ParseInt(nim, 10, 64)
	if err != nil {
		return models.UserProfile{}, invalid("nim", "NIM must be a number")
	}
	b, err := strconv.ParseInt(batch, 10, 64)
	if err != nil {
		return models.UserProfile{}, invalid("batch", "Batch must be a number")
	}

	return models.UserProfile{Name: name, NIM: n, StudyProgram: program, Batch: b}, nil
}

// ProfileService drives the profile form and the home screen.
type ProfileService interface {
	// Submit saves the profile locally, then remotely when a user id is
	// known, then marks the profile complete.
	Submit(ctx context.Context, form ProfileForm) (models.UserProfile, error)
	// Load returns the profile to show on the home screen: the remote record
	// when there is one, else the local copy. It may return nil.
	Load(ctx context.Context) (*models.UserProfile, error)
}

type profileService struct {
	session SessionManager
	remote  RemoteProfiles
	local   LocalProfiles
	logger  logging.Logger
}

func NewProfileService(session SessionManager, remote RemoteProfiles, local LocalProfiles, logger logging.Logger) ProfileService {
	return &profileService{session: session, remote: remote, local: local, logger: logger}
}

func (s *profileService) Submit(ctx context.Context, form ProfileForm) (models.UserProfile, error) {
	p, err := form.Parse()
	if err != nil {
		return models.UserProfile{}, err
	}

	if err := s.local.SaveProfile(ctx, p); err != nil {
		return models.UserProfile{}, err
	}

	if userID := s.session.Status().UserID; userID != "" {
		if err := s.remote.SaveProfile(ctx, userID, p); err != nil {
			s.logger.Warn(ctx, "remote profile save failed", "user_id", userID, "error", err)
			return models.UserProfile{}, err
		}
	}

	if err := s.session.CompleteProfile(ctx); err != nil {
		return models.UserProfile{}, err
	}
	return p, nil
}

func (s *profileService) Load(ctx context.Context) (*models.UserProfile, error) {
	if userID := s.session.Status().UserID; userID != "" {
		p, err := s.remote.GetProfile(ctx, userID)
		if err != nil {
			s.logger.Warn(ctx, "remote profile unavailable, using local copy", "user_id", userID, "error", err)
		} else if p != nil {
			return p, nil
		}
	}
	return s.local.Profile(ctx)
}
