package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/logist-pro/lgp-api-examples/client"
)

// Builder turns the creation dictionaries into a submitted tender.
type Builder interface {
	// Name identifies the builder in logs.
	Name() string
	// Submit builds the payload from dicts and sends it, returning the new
	// tender identifier. Payload errors wrap client.ErrMissingReference and
	// are reported before any request is sent.
	Submit(ctx context.Context, c *client.Client, dicts *client.Dictionaries) (string, error)
}

// Template carries the sample business values of a tender.
type Template struct {
	Cargo            string
	CargoWeight      float64
	CargoVolume      float64
	CargoDangerClass int
	PackageType      string
	LoadingAddress   string
	UnloadingAddress string
	InitCost         float64
	MinStepReq       string
	VatReqs          string
}

// DefaultTemplate is the sample shipment used by the marketplace examples:
// a joint cargo from Moscow to Saint Petersburg with automatic bid steps.
var DefaultTemplate = Template{
	Cargo:            "Важный груз",
	CargoWeight:      10,
	CargoVolume:      10,
	CargoDangerClass: 0,
	PackageType:      "Joint",
	LoadingAddress:   "Москва, Красная площадь",
	UnloadingAddress: "Санкт-Петербург, Дворцовая площадь",
	InitCost:         50000,
	MinStepReq:       "Auto",
	VatReqs:          "None",
}

// CreateTender builds an open tender for the first corporate customer.
type CreateTender struct {
	Clock    clockwork.Clock
	Template Template
}

// NewCreateTender returns a CreateTender builder using the real clock and
// the default template.
func NewCreateTender() *CreateTender {
	return &CreateTender{Clock: clockwork.NewRealClock(), Template: DefaultTemplate}
}

func (b *CreateTender) Name() string { return "create" }

// Payload builds the request body without sending it.
func (b *CreateTender) Payload(dicts *client.Dictionaries) (client.CreateTenderRequest, error) {
	customer, ok := dicts.FirstCustomer()
	if !ok {
		return client.CreateTenderRequest{}, fmt.Errorf("corporate with contact person: %w", client.ErrMissingReference)
	}
	return buildTender(b.Clock.Now(), b.Template, customer), nil
}

func (b *CreateTender) Submit(ctx context.Context, c *client.Client, dicts *client.Dictionaries) (string, error) {
	req, err := b.Payload(dicts)
	if err != nil {
		return "", &StepError{Step: StepPayload, Err: err}
	}
	return c.CreateTender(ctx, req)
}

// AssignTender builds a tender handed directly to the first contractor.
type AssignTender struct {
	Clock    clockwork.Clock
	Template Template
	// Cost is the agreed price; zero means the template's initial cost.
	Cost float64
}

// NewAssignTender returns an AssignTender builder using the real clock and
// the default template.
func NewAssignTender() *AssignTender {
	return &AssignTender{Clock: clockwork.NewRealClock(), Template: DefaultTemplate}
}

func (b *AssignTender) Name() string { return "assign" }

// Payload builds the request body without sending it.
func (b *AssignTender) Payload(dicts *client.Dictionaries) (client.AssignTenderRequest, error) {
	customer, ok := dicts.FirstCustomer()
	if !ok {
		return client.AssignTenderRequest{}, fmt.Errorf("corporate with contact person: %w", client.ErrMissingReference)
	}
	contractor, ok := dicts.FirstContractor()
	if !ok {
		return client.AssignTenderRequest{}, fmt.Errorf("contractor: %w", client.ErrMissingReference)
	}
	cost := b.Cost
	if cost == 0 {
		cost = b.Template.InitCost
	}
	return client.AssignTenderRequest{
		CreateTenderRequest: buildTender(b.Clock.Now(), b.Template, customer),
		ContractorID:        contractor.ID,
		Cost:                cost,
	}, nil
}

func (b *AssignTender) Submit(ctx context.Context, c *client.Client, dicts *client.Dictionaries) (string, error) {
	req, err := b.Payload(dicts)
	if err != nil {
		return "", &StepError{Step: StepPayload, Err: err}
	}
	return c.AssignTender(ctx, req)
}

// buildTender lays out the schedule relative to now: execution starts in
// seven days at 08:00, bidding opens now and closes an hour before start.
func buildTender(now time.Time, tpl Template, customer client.Customer) client.CreateTenderRequest {
	day := now.AddDate(0, 0, 7)
	start := time.Date(day.Year(), day.Month(), day.Day(), 8, 0, 0, 0, now.Location())
	at := func(t time.Time) string { return t.Format(client.DateTimeLayout) }

	return client.CreateTenderRequest{
		OrderDate:        at(now),
		StartDate:        at(start),
		Customer:         customer,
		Cargo:            tpl.Cargo,
		CargoWeight:      tpl.CargoWeight,
		CargoVolume:      tpl.CargoVolume,
		CargoDangerClass: tpl.CargoDangerClass,
		PackageType:      tpl.PackageType,
		RoutePoints: []client.RoutePoint{
			{
				Type:        client.RoutePointLoading,
				Address:     tpl.LoadingAddress,
				ArrivalTime: at(start),
				LeaveTime:   at(start.Add(time.Hour)),
			},
			{
				Type:        client.RoutePointUnloading,
				Address:     tpl.UnloadingAddress,
				ArrivalTime: at(start.Add(11 * time.Hour)),
				LeaveTime:   at(start.Add(12 * time.Hour)),
			},
		},
		Tender: client.TenderTerms{
			StartDate:  at(now),
			EndDate:    at(start.Add(-time.Hour)),
			InitCost:   tpl.InitCost,
			MinStepReq: tpl.MinStepReq,
			VatReqs:    tpl.VatReqs,
		},
	}
}
