package types

// ------------------------------
// Core Domain Entities
// ------------------------------

// Session is the explicit per-client authentication state that every request
// function receives. The zero Cookie means the login step has not run yet.
type Session struct {
	BaseURL string // versioned API root, e.g. https://host/api/v1
	APIKey  string // sent as X-ApiKey on every request
	Cookie  string // first Set-Cookie segment captured at login
}

// Authenticated reports whether a session token has been captured.
func (s Session) Authenticated() bool { return s.Cookie != "" }

// WithCookie returns a copy of s carrying the given session token.
func (s Session) WithCookie(cookie string) Session {
	s.Cookie = cookie
	return s
}

// ContactPerson is a customer's contact as listed in the creation dictionaries.
type ContactPerson struct {
	ID   string `json:"Id"`
	Name string `json:"Name,omitempty"`
}

// Corporate is a customer company with its ordered contact persons.
type Corporate struct {
	ID             string          `json:"Id"`
	Name           string          `json:"Name,omitempty"`
	ContactPersons []ContactPerson `json:"ContactPersons"`
}

// Contractor is a carrier a tender can be assigned to directly.
type Contractor struct {
	ID   string `json:"Id"`
	Name string `json:"Name,omitempty"`
}

// Proposal is the best offer currently placed on a tender.
type Proposal struct {
	Bet float64 `json:"Bet"`
}

// Tender is the read view of a tender returned by GET tender/{id}.
type Tender struct {
	Number          int64     `json:"Number"`
	Status          string    `json:"Status"`
	StatusTitle     string    `json:"StatusTitle"`
	ActualDate      string    `json:"ActualDate"`
	ActualDateTitle string    `json:"ActualDateTitle"`
	RouteLength     float64   `json:"RouteLenght"`
	ProposalsCount  int       `json:"ProposalsCount"`
	BestProposal    *Proposal `json:"BestProposal,omitempty"`
}
