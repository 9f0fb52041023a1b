// Package sandbox serves a local stand-in for the marketplace API. It keeps
// tenders in memory and answers with the same wire shapes as the real
// service, so the client and the workflow can be exercised offline. It does
// not run auctions, build routes, or validate cargo.
package sandbox

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/logist-pro/lgp-api-examples/client"
	"github.com/logist-pro/lgp-api-examples/devmode"
)

// CookieName is the session cookie the sandbox issues on login.
const CookieName = ".AspNet.ApplicationCookie"

// Tender statuses reported by the sandbox.
const (
	StatusAwaiting = "Awaiting"
	StatusAssigned = "Assigned"
)

// Config seeds a Server.
type Config struct {
	APIKey      string
	Login       string
	Password    string
	Corporates  []client.Corporate
	Contractors []client.Contractor
	Clock       clockwork.Clock
}

// DefaultConfig uses the devmode credentials and a small reference set.
func DefaultConfig() Config {
	return Config{
		APIKey:   devmode.APIKey,
		Login:    devmode.Login,
		Password: devmode.Password,
		Corporates: []client.Corporate{
			{
				ID:   "7f1c2a52-3d1e-4c55-9a43-6f0c1e2b9d10",
				Name: "Sandbox Trading LLC",
				ContactPersons: []client.ContactPerson{
					{ID: "0b6a4e7e-2b1f-4a4b-8d7c-5c4f1e2a3b01", Name: "Dispatcher"},
				},
			},
		},
		Contractors: []client.Contractor{
			{ID: "c3a1f0d2-8e4b-4f6a-9b2c-1d0e7f6a5b40", Name: "Sandbox Carrier"},
		},
		Clock: clockwork.NewRealClock(),
	}
}

// tenderRecord is the stored state of one tender.
type tenderRecord struct {
	view      client.Tender
	changedAt time.Time
}

// Server is the in-memory marketplace.
type Server struct {
	cfg Config

	mu       sync.RWMutex
	sessions map[string]string // cookie value -> login
	tenders  map[string]*tenderRecord
	seq      int64
}

// New creates a Server from cfg.
func New(cfg Config) *Server {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	return &Server{
		cfg:      cfg,
		sessions: make(map[string]string),
		tenders:  make(map[string]*tenderRecord),
	}
}

// openSession registers a new session for login and returns its cookie value.
func (s *Server) openSession(login string) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = login
	s.mu.Unlock()
	return token
}

func (s *Server) validSession(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[token]
	return ok
}

func (s *Server) knownCustomer(c client.Customer) bool {
	for _, corp := range s.cfg.Corporates {
		if corp.ID != c.CompanyID {
			continue
		}
		for _, p := range corp.ContactPersons {
			if p.ID == c.ContactID {
				return true
			}
		}
	}
	return false
}

func (s *Server) knownContractor(id string) bool {
	for _, k := range s.cfg.Contractors {
		if k.ID == id {
			return true
		}
	}
	return false
}

// addTender stores a tender and returns its identifier.
func (s *Server) addTender(req client.CreateTenderRequest, contractorID string, cost float64) (string, error) {
	if !s.knownCustomer(req.Customer) {
		return "", fmt.Errorf("unknown customer %s/%s", req.Customer.CompanyID, req.Customer.ContactID)
	}
	if contractorID != "" && !s.knownContractor(contractorID) {
		return "", fmt.Errorf("unknown contractor %s", contractorID)
	}

	now := s.cfg.Clock.Now()
	view := client.Tender{
		Status:      StatusAwaiting,
		StatusTitle: "Awaiting offers",
		ActualDate:  now.Format(client.DateTimeLayout),
	}
	if contractorID != "" {
		view.Status = StatusAssigned
		view.StatusTitle = "Assigned to contractor"
		view.ProposalsCount = 1
		view.BestProposal = &client.Proposal{Bet: cost}
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.seq++
	view.Number = s.seq
	s.tenders[id] = &tenderRecord{view: view, changedAt: now}
	s.mu.Unlock()
	return id, nil
}

func (s *Server) tender(id string) (client.Tender, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.tenders[id]
	if !ok {
		return client.Tender{}, false
	}
	view := rec.view
	view.ActualDateTitle = humanizeSince(rec.changedAt, s.cfg.Clock.Now())
	return view, true
}

// humanizeSince renders the age of a status change the way the marketplace
// titles it.
func humanizeSince(at, now time.Time) string {
	d := now.Sub(at)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%d h ago", int(d.Hours()))
	}
}
