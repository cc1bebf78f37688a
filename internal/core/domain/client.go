package domain

import "time"

// Client is a case record representing a person receiving services.
type Client struct {
	ID     string `json:"id"`
	Name   string `json:"client_name"`
	CaseID string `json:"case_id"`
	// AssignedSpecialist is the user id of the responsible Fachkraft.
	// Empty means no specialist has been assigned yet.
	AssignedSpecialist string     `json:"assigned_specialist,omitempty"`
	BirthDate          *time.Time `json:"birth_date,omitempty"`
	Address            string     `json:"address,omitempty"`
	// TargetLanguage is the client's preferred translation target, used as
	// default when a translation request carries no explicit language.
	TargetLanguage string    `json:"target_language,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
