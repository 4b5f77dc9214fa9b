// internal/store/applications_test.go
package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"nbn-order-service/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var eligibleColumns = []string{
	"id", "customer_id", "plan_id",
	"address_1", "address_2", "city", "state", "postcode",
	"status", "type", "name", "monthly_cost",
}

var listColumns = []string{
	"id", "customer_id", "plan_id",
	"address_1", "address_2", "city", "state", "postcode",
	"status", "order_id", "created_at", "updated_at",
	"first_name", "last_name",
	"type", "name", "monthly_cost",
}

func TestEligiblePage_ReturnsEligibleApplications(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(eligibleColumns).
		AddRow(1, 10, 100, "1 Example St", "Unit 3", "Sydney", "NSW", "2000", "order", "nbn", "NBN 100 Fast", 9900).
		AddRow(2, 11, 100, "5 Other St", nil, "Brisbane", "QLD", "4000", "order", "nbn", "NBN 100 Fast", 9900)

	mock.ExpectQuery(`SELECT a.id, a.customer_id, a.plan_id`).
		WithArgs(models.StatusOrder, models.PlanTypeNBN, int64(0), 500).
		WillReturnRows(rows)

	s := NewApplicationStore(db)
	apps, err := s.EligiblePage(context.Background(), 0, 500)

	assert.NoError(t, err)
	assert.Len(t, apps, 2)

	assert.Equal(t, int64(1), apps[0].ID)
	assert.Equal(t, "Unit 3", apps[0].Address2)
	assert.NotNil(t, apps[0].Plan)
	assert.Equal(t, models.PlanTypeNBN, apps[0].Plan.Type)
	assert.Equal(t, "NBN 100 Fast", apps[0].Plan.Name)

	assert.Equal(t, int64(2), apps[1].ID)
	assert.Empty(t, apps[1].Address2)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEligiblePage_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT a.id, a.customer_id, a.plan_id`).
		WithArgs(models.StatusOrder, models.PlanTypeNBN, int64(50), 500).
		WillReturnRows(sqlmock.NewRows(eligibleColumns))

	s := NewApplicationStore(db)
	apps, err := s.EligiblePage(context.Background(), 50, 500)

	assert.NoError(t, err)
	assert.Empty(t, apps)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEligiblePage_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT a.id, a.customer_id, a.plan_id`).
		WillReturnError(errors.New("connection lost"))

	s := NewApplicationStore(db)
	_, err = s.EligiblePage(context.Background(), 0, 500)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "eligible page query failed")
}

func TestMarkComplete(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE applications`).
		WithArgs("ORD000000000000", models.StatusComplete, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewApplicationStore(db)
	err = s.MarkComplete(context.Background(), 42, "ORD000000000000")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkOrderFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE applications`).
		WithArgs(models.StatusOrderFailed, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewApplicationStore(db)
	err = s.MarkOrderFailed(context.Background(), 42)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_WithPlanTypeFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(listColumns).
		AddRow(3, 12, 200, "7 Fibre Ave", nil, "Adelaide", "SA", "5000",
			"complete", "ORD42", created, created,
			"Jane", "Citizen", "opticomm", "Opticomm Basic", 6500)

	mock.ExpectQuery(`JOIN customers c ON c.id = a.customer_id`).
		WithArgs(models.PlanTypeOpticomm, 15, 0).
		WillReturnRows(rows)

	s := NewApplicationStore(db)
	apps, err := s.List(context.Background(), ListFilter{PlanType: models.PlanTypeOpticomm}, 0, 15)

	assert.NoError(t, err)
	assert.Len(t, apps, 1)
	assert.Equal(t, "ORD42", apps[0].OrderID)
	assert.Equal(t, models.StatusComplete, apps[0].Status)
	assert.Equal(t, "Jane Citizen", apps[0].Customer.FullName())
	assert.Equal(t, models.PlanTypeOpticomm, apps[0].Plan.Type)
	assert.Equal(t, int64(6500), apps[0].Plan.MonthlyCost)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_Unfiltered(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(listColumns).
		AddRow(1, 10, 100, "1 Example St", "Unit 3", "Sydney", "NSW", "2000",
			"order", nil, created, created,
			"John", "Smith", "nbn", "NBN 100 Fast", 9900)

	mock.ExpectQuery(`JOIN customers c ON c.id = a.customer_id`).
		WithArgs(15, 0).
		WillReturnRows(rows)

	s := NewApplicationStore(db)
	apps, err := s.List(context.Background(), ListFilter{}, 0, 15)

	assert.NoError(t, err)
	assert.Len(t, apps, 1)
	assert.Empty(t, apps[0].OrderID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(models.PlanTypeMobile).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	s := NewApplicationStore(db)
	total, err := s.Count(context.Background(), ListFilter{PlanType: models.PlanTypeMobile})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
