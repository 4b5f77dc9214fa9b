// internal/workers/nbnorder/models.go
package nbnorder

import "nbn-order-service/internal/models"

// Input is one application's submission data, captured at enqueue time.
type Input struct {
	ApplicationID int64  `json:"applicationId"`
	Address1      string `json:"address1"`
	Address2      string `json:"address2,omitempty"`
	City          string `json:"city"`
	State         string `json:"state"`
	Postcode      string `json:"postcode"`
	PlanName      string `json:"planName"`
}

// InputFromApplication snapshots an application (with its plan loaded) into
// a job input.
func InputFromApplication(app *models.Application) *Input {
	in := &Input{
		ApplicationID: app.ID,
		Address1:      app.Address1,
		Address2:      app.Address2,
		City:          app.City,
		State:         app.State,
		Postcode:      app.Postcode,
	}
	if app.Plan != nil {
		in.PlanName = app.Plan.Name
	}
	return in
}

// Outcome of a submission job. Both are terminal for this subsystem.
type Outcome string

const (
	OutcomeComplete    Outcome = "complete"
	OutcomeOrderFailed Outcome = "order_failed"
)

type Output struct {
	ApplicationID int64   `json:"applicationId"`
	Outcome       Outcome `json:"outcome"`
	OrderID       string  `json:"orderId,omitempty"`
}
