// internal/models/plan.go
package models

import "fmt"

// PlanType is the closed set of service-plan technologies. Only NBN plans
// participate in the order pipeline.
type PlanType string

const (
	PlanTypeNBN      PlanType = "nbn"
	PlanTypeOpticomm PlanType = "opticomm"
	PlanTypeMobile   PlanType = "mobile"
)

// ValidPlanType reports whether s names a known plan type.
func ValidPlanType(s string) bool {
	switch PlanType(s) {
	case PlanTypeNBN, PlanTypeOpticomm, PlanTypeMobile:
		return true
	}
	return false
}

// Plan is a service plan offering. MonthlyCost is in cents.
type Plan struct {
	ID          int64    `json:"id"`
	Type        PlanType `json:"type"`
	Name        string   `json:"name"`
	MonthlyCost int64    `json:"monthlyCost"`
}

// MonthlyCostDollars renders the monthly cost as a currency string with two
// decimals and thousands separators, e.g. "$1,234.56".
func (p *Plan) MonthlyCostDollars() string {
	cents := p.MonthlyCost
	negative := cents < 0
	if negative {
		cents = -cents
	}

	whole := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", whole)
	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, d)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s.%02d", sign, grouped, frac)
}
