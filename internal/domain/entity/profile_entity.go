package entity

import (
	"strings"
	"time"
)

// Profile is the per-identity public record. It owns the experience and
// education sequences; both are kept newest first.
type Profile struct {
	ID             string       `json:"_id" bson:"_id"`
	OwnerID        string       `json:"-" bson:"user_id"`
	Owner          *Owner       `json:"user,omitempty" bson:"-"`
	Company        string       `json:"company,omitempty" bson:"company,omitempty"`
	Website        string       `json:"website,omitempty" bson:"website,omitempty"`
	Location       string       `json:"location,omitempty" bson:"location,omitempty"`
	Bio            string       `json:"bio,omitempty" bson:"bio,omitempty"`
	Status         string       `json:"status,omitempty" bson:"status,omitempty"`
	GithubUsername string       `json:"githubusername,omitempty" bson:"github_username,omitempty"`
	Skills         []string     `json:"skills" bson:"skills"`
	Social         Social       `json:"social" bson:"social"`
	Experience     []Experience `json:"experience" bson:"experience"`
	Education      []Education  `json:"education" bson:"education"`
	CreatedAt      time.Time    `json:"date" bson:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" bson:"updated_at"`
}

type Social struct {
	Youtube   string `json:"youtube,omitempty" bson:"youtube,omitempty"`
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
	Linkedin  string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
}

type Experience struct {
	ID          string `json:"_id" bson:"id"`
	Title       string `json:"title" bson:"title"`
	Company     string `json:"company" bson:"company"`
	Location    string `json:"location,omitempty" bson:"location,omitempty"`
	From        string `json:"from" bson:"from"`
	To          string `json:"to,omitempty" bson:"to,omitempty"`
	Current     bool   `json:"current" bson:"current"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

type Education struct {
	ID           string `json:"_id" bson:"id"`
	School       string `json:"school" bson:"school"`
	Degree       string `json:"degree" bson:"degree"`
	FieldOfStudy string `json:"fieldofstudy" bson:"field_of_study"`
	From         string `json:"from" bson:"from"`
	To           string `json:"to,omitempty" bson:"to,omitempty"`
	Current      bool   `json:"current" bson:"current"`
	Description  string `json:"description,omitempty" bson:"description,omitempty"`
}

// ProfileFields is the partial field set of an upsert. A nil pointer means
// the field was not supplied and the stored value must be left alone.
type ProfileFields struct {
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	GithubUsername *string
	Skills         []string // nil when not supplied
	Social         map[string]string
}

// Social keys accepted in ProfileFields.Social.
const (
	SocialYoutube   = "youtube"
	SocialFacebook  = "facebook"
	SocialTwitter   = "twitter"
	SocialInstagram = "instagram"
	SocialLinkedin  = "linkedin"
)

// SocialKeys lists the social keys in their canonical order.
var SocialKeys = []string{SocialYoutube, SocialFacebook, SocialTwitter, SocialInstagram, SocialLinkedin}

// ParseSkills splits a comma separated list, trimming each item and
// dropping empty ones. Order is preserved.
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Apply merges the supplied fields into p. It mirrors what the stores do in
// a single conditional write and is used by in-memory implementations.
func (f ProfileFields) Apply(p *Profile) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&p.Company, f.Company)
	set(&p.Website, f.Website)
	set(&p.Location, f.Location)
	set(&p.Bio, f.Bio)
	set(&p.Status, f.Status)
	set(&p.GithubUsername, f.GithubUsername)
	if f.Skills != nil {
		p.Skills = append([]string(nil), f.Skills...)
	}
	for k, v := range f.Social {
		p.Social.Set(k, v)
	}
}

// Set assigns one social link by key; unknown keys are ignored.
func (s *Social) Set(key, value string) {
	switch key {
	case SocialYoutube:
		s.Youtube = value
	case SocialFacebook:
		s.Facebook = value
	case SocialTwitter:
		s.Twitter = value
	case SocialInstagram:
		s.Instagram = value
	case SocialLinkedin:
		s.Linkedin = value
	}
}

// Normalize replaces nil sequences with empty ones so JSON encodes [] not null.
func (p *Profile) Normalize() {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []Experience{}
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
}
