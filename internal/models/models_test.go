// internal/models/models_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullAddress_SkipsEmptyParts(t *testing.T) {
	app := &Application{
		Address1: "1 Example St",
		City:     "Sydney",
		State:    "NSW",
		Postcode: "2000",
	}
	assert.Equal(t, "1 Example St, Sydney, NSW, 2000", app.FullAddress())

	app.Address2 = "Unit 3"
	assert.Equal(t, "1 Example St, Unit 3, Sydney, NSW, 2000", app.FullAddress())
}

func TestMonthlyCostDollars(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{9900, "$99.00"},
		{123456, "$1,234.56"},
		{5, "$0.05"},
		{0, "$0.00"},
		{100000000, "$1,000,000.00"},
	}

	for _, tc := range cases {
		p := &Plan{MonthlyCost: tc.cents}
		assert.Equal(t, tc.want, p.MonthlyCostDollars())
	}
}

func TestValidPlanType(t *testing.T) {
	assert.True(t, ValidPlanType("nbn"))
	assert.True(t, ValidPlanType("opticomm"))
	assert.True(t, ValidPlanType("mobile"))
	assert.False(t, ValidPlanType("invalid"))
	assert.False(t, ValidPlanType(""))
}

func TestCustomerFullName(t *testing.T) {
	c := &Customer{FirstName: "Jane", LastName: "Citizen"}
	assert.Equal(t, "Jane Citizen", c.FullName())

	c = &Customer{FirstName: "Cher"}
	assert.Equal(t, "Cher", c.FullName())
}
