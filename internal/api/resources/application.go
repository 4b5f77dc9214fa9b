// internal/api/resources/application.go
package resources

import (
	"nbn-order-service/internal/models"
)

// ApplicationResource is the listing representation of an application.
// order_id appears only once provisioning has completed.
type ApplicationResource struct {
	ID               int64  `json:"id"`
	CustomerFullName string `json:"customer_full_name"`
	Address          string `json:"address"`
	PlanType         string `json:"plan_type"`
	PlanName         string `json:"plan_name"`
	State            string `json:"state"`
	PlanMonthlyCost  string `json:"plan_monthly_cost"`
	OrderID          string `json:"order_id,omitempty"`
}

// FromApplication shapes one application (with customer and plan loaded).
func FromApplication(app *models.Application) ApplicationResource {
	res := ApplicationResource{
		ID:      app.ID,
		Address: app.FullAddress(),
		State:   app.State,
	}
	if app.Customer != nil {
		res.CustomerFullName = app.Customer.FullName()
	}
	if app.Plan != nil {
		res.PlanType = string(app.Plan.Type)
		res.PlanName = app.Plan.Name
		res.PlanMonthlyCost = app.Plan.MonthlyCostDollars()
	}
	if app.Status == models.StatusComplete {
		res.OrderID = app.OrderID
	}
	return res
}

// FromApplications shapes a page, never returning a nil slice.
func FromApplications(apps []models.Application) []ApplicationResource {
	out := make([]ApplicationResource, 0, len(apps))
	for i := range apps {
		out = append(out, FromApplication(&apps[i]))
	}
	return out
}
