package types

// ------------------------------
// Request Types
// ------------------------------

// DateTimeLayout is the date/time format the marketplace accepts in payloads.
const DateTimeLayout = "2006-01-02 15:04"

// LoginMode selects how credentials travel on POST account/login.
type LoginMode string

const (
	// LoginQuery sends login and password as URL query parameters with an empty body.
	LoginQuery LoginMode = "query"
	// LoginJSON sends a JSON body {"Login": ..., "Password": ...}.
	LoginJSON LoginMode = "json"
)

// Credentials holds the technical account used to open a session.
type Credentials struct {
	Login    string `json:"Login"`
	Password string `json:"Password"`
}

// Customer references the ordering company and its responsible contact.
type Customer struct {
	CompanyID string `json:"CompanyId"`
	ContactID string `json:"ContactId"`
}

// Route point types.
const (
	RoutePointLoading   = "Loading"
	RoutePointUnloading = "Unloading"
)

// RoutePoint is one stop of the delivery route. When Distance is nil the
// marketplace builds the route itself.
type RoutePoint struct {
	Type        string   `json:"Type"`
	Address     string   `json:"Address"`
	Distance    *float64 `json:"Distance,omitempty"`
	ArrivalTime string   `json:"ArrivalTime"`
	LeaveTime   string   `json:"LeaveTime"`
}

// TenderTerms describes the bidding window and price requirements.
type TenderTerms struct {
	StartDate  string  `json:"StartDate"`
	EndDate    string  `json:"EndDate"`
	InitCost   float64 `json:"InitCost"`
	MinStepReq string  `json:"MinStepReq"`
	VatReqs    string  `json:"VatReqs"`
}

// CreateTenderRequest is the body of POST tender/create.
type CreateTenderRequest struct {
	OrderDate        string       `json:"OrderDate"`
	StartDate        string       `json:"StartDate"`
	Customer         Customer     `json:"Customer"`
	Cargo            string       `json:"Cargo"`
	CargoWeight      float64      `json:"CargoWeight"`
	CargoVolume      float64      `json:"CargoVolume"`
	CargoDangerClass int          `json:"CargoDangerClass"`
	PackageType      string       `json:"PackageType"`
	RoutePoints      []RoutePoint `json:"RoutePoints"`
	Tender           TenderTerms  `json:"Tender"`
}

// AssignTenderRequest is the body of POST tender/assign: a tender handed
// straight to a contractor at a fixed cost.
type AssignTenderRequest struct {
	CreateTenderRequest
	ContractorID string  `json:"ContractorId"`
	Cost         float64 `json:"Cost"`
}
