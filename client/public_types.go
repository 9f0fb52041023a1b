package client

import "github.com/logist-pro/lgp-api-examples/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Session state
	Session     = types.Session
	Credentials = types.Credentials
	LoginMode   = types.LoginMode

	// Requests
	Customer            = types.Customer
	RoutePoint          = types.RoutePoint
	TenderTerms         = types.TenderTerms
	CreateTenderRequest = types.CreateTenderRequest
	AssignTenderRequest = types.AssignTenderRequest

	// Responses
	Dictionaries  = types.Dictionaries
	Corporate     = types.Corporate
	ContactPerson = types.ContactPerson
	Contractor    = types.Contractor
	Tender        = types.Tender
	Proposal      = types.Proposal
)

const (
	LoginQuery = types.LoginQuery
	LoginJSON  = types.LoginJSON

	RoutePointLoading   = types.RoutePointLoading
	RoutePointUnloading = types.RoutePointUnloading

	// DateTimeLayout formats dates in tender payloads.
	DateTimeLayout = types.DateTimeLayout
)
