package entity

// ProfileSummary is the searchable projection of a Profile kept in the
// profile search index.
type ProfileSummary struct {
	OwnerID  string   `json:"user_id"`
	Name     string   `json:"name,omitempty"`
	Avatar   string   `json:"avatar,omitempty"`
	Status   string   `json:"status,omitempty"`
	Company  string   `json:"company,omitempty"`
	Location string   `json:"location,omitempty"`
	Bio      string   `json:"bio,omitempty"`
	Skills   []string `json:"skills"`
}

// Summarize projects p for indexing.
func (p *Profile) Summarize() ProfileSummary {
	s := ProfileSummary{
		OwnerID:  p.OwnerID,
		Status:   p.Status,
		Company:  p.Company,
		Location: p.Location,
		Bio:      p.Bio,
		Skills:   append([]string{}, p.Skills...),
	}
	if p.Owner != nil {
		s.Name = p.Owner.Name
		s.Avatar = p.Owner.AvatarURL
	}
	return s
}
