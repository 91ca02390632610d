package models

// UserProfile is the record filled in on the profile form. The remote
// profile store owns it, keyed by user id; a local copy may be cached.
type UserProfile struct {
	Name         string `json:"name"`
	NIM          int64  `json:"nim"`
	StudyProgram string `json:"studyProgram"`
	Batch        int64  `json:"batch"`
}

// IsComplete reports whether p has a non-empty name and a non-zero NIM.
// A nil profile is incomplete.
func (p *UserProfile) IsComplete() bool {
	return p != nil && p.Name != "" && p.NIM != 0
}
