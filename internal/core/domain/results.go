package domain

// PartyTotal is one row of the grouped tally.
type PartyTotal struct {
	Party Party `json:"party"`
	Count int64 `json:"count"`
}

type Results struct {
	Totals []PartyTotal `json:"totals"`
	Total  int64        `json:"total"`
	Recent []Vote       `json:"recent"`
}
