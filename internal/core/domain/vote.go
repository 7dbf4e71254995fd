package domain

import "time"

type Party string

const (
	PartyDMK  Party = "DMK"
	PartyADMK Party = "ADMK"
	PartyTVK  Party = "TVK"
	PartyNTK  Party = "NTK"
)

// Parties is the closed set of valid choices.
var Parties = []Party{PartyDMK, PartyADMK, PartyTVK, PartyNTK}

func (p Party) Valid() bool {
	for _, known := range Parties {
		if p == known {
			return true
		}
	}
	return false
}

// Vote is immutable once recorded: there is no update or delete path.
type Vote struct {
	ID       int64     `json:"-"`
	GoogleID string    `json:"-"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Party    Party     `json:"party"`
	VotedAt  time.Time `json:"voted_at"`
}
