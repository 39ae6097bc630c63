package domain

import "time"

// Report is a finished, derived summary of one search run.
// Reports are what gets persisted; a search itself is never resumed.
type Report struct {
	ID        string    `json:"id"`
	Story     string    `json:"story"`
	CreatedAt time.Time `json:"created_at"`
	Goal      Goal      `json:"goal"`
	Outcome   Outcome   `json:"outcome"`
	Best      *Path     `json:"best,omitempty"`
	Explored  int       `json:"explored"`
	Complete  int       `json:"complete_paths"`
	Top       []Path    `json:"top,omitempty"`

	// Sealed holds the encrypted report when a store encrypts at rest.
	// Only ID and CreatedAt are readable alongside it.
	Sealed string `json:"sealed,omitempty"`
}
