package domain

// Identity is the display identity behind a roster.
// Team and GM are never empty; resolvers synthesise placeholders.
type Identity struct {
	Team   string `json:"team"`
	GM     string `json:"gm"`
	Handle string `json:"username"`
}

// PlayerRef is the display form of a player id.
type PlayerRef struct {
	Name     string `json:"name"`
	Team     string `json:"team"`
	Position string `json:"pos"`
}
