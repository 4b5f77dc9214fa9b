// internal/models/application.go
package models

import (
	"strings"
	"time"
)

// ApplicationStatus is the lifecycle state of an application.
// OrderFailed is terminal for this subsystem: nothing here resets it.
type ApplicationStatus string

const (
	StatusPrelim      ApplicationStatus = "prelim"
	StatusOrder       ApplicationStatus = "order"
	StatusComplete    ApplicationStatus = "complete"
	StatusOrderFailed ApplicationStatus = "order_failed"
)

// Application is one customer's request for a service plan. Created by an
// external intake process; this service only moves it through the order
// pipeline and never deletes it.
type Application struct {
	ID         int64             `json:"id"`
	CustomerID int64             `json:"customerId"`
	PlanID     int64             `json:"planId"`
	Address1   string            `json:"address1"`
	Address2   string            `json:"address2,omitempty"`
	City       string            `json:"city"`
	State      string            `json:"state"`
	Postcode   string            `json:"postcode"`
	Status     ApplicationStatus `json:"status"`
	OrderID    string            `json:"orderId,omitempty"` // set iff Status == StatusComplete
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`

	// Populated only when the caller asked for the joins.
	Customer *Customer `json:"customer,omitempty"`
	Plan     *Plan     `json:"plan,omitempty"`
}

// FullAddress joins the non-empty address parts with ", ".
func (a *Application) FullAddress() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Address1, a.Address2, a.City, a.State, a.Postcode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
