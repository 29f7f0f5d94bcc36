package model

// Profile is a snapshot of a user's stored coaching preferences.
// A nil *Profile means no personalization is available; that is not
// an error condition anywhere in the engine.
type Profile struct {
	UserID         string
	Interests      []string
	EducationLevel string
	Skills         []string
	Locations      []string
}

// Clone returns a deep copy of the profile
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	copied := &Profile{
		UserID:         p.UserID,
		EducationLevel: p.EducationLevel,
	}
	if p.Interests != nil {
		copied.Interests = append([]string{}, p.Interests...)
	}
	if p.Skills != nil {
		copied.Skills = append([]string{}, p.Skills...)
	}
	if p.Locations != nil {
		copied.Locations = append([]string{}, p.Locations...)
	}
	return copied
}
