package scenario

import (
	"fmt"
	"io"

	"github.com/logist-pro/lgp-api-examples/client"
)

// WriteReport prints the tender view of a finished run.
func WriteReport(w io.Writer, res *Result) error {
	if _, err := fmt.Fprintf(w, "Tender created: %s\n", res.TenderID); err != nil {
		return err
	}
	return WriteTender(w, res.Tender)
}

// WriteTender prints the fields of a tender view, one per line.
func WriteTender(w io.Writer, t *client.Tender) error {
	lines := []string{
		fmt.Sprintf("  Number:          %d", t.Number),
		fmt.Sprintf("  Status:          %s (%s)", t.StatusTitle, t.Status),
		fmt.Sprintf("  Status changed:  %s (%s)", t.ActualDate, t.ActualDateTitle),
		fmt.Sprintf("  Route length:    %g", t.RouteLength),
		fmt.Sprintf("  Proposals:       %d", t.ProposalsCount),
	}
	if t.BestProposal != nil {
		lines = append(lines, fmt.Sprintf("  Best proposal:   %g", t.BestProposal.Bet))
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
