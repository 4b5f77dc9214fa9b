// internal/store/applications.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"nbn-order-service/internal/models"
)

// ApplicationStore is the only shared resource between submission jobs. Each
// write touches exactly one application row; there is no cross-row locking.
type ApplicationStore struct {
	db *sql.DB
}

func NewApplicationStore(db *sql.DB) *ApplicationStore {
	return &ApplicationStore{db: db}
}

// EligiblePage returns up to limit applications eligible for order
// submission (status = order, plan type = nbn) with id > afterID, ordered by
// ascending id. Keyset pagination keeps the scan resumable and memory use
// bounded regardless of backlog size. The plan join is loaded eagerly because
// every caller needs the plan name for the submission payload.
func (s *ApplicationStore) EligiblePage(ctx context.Context, afterID int64, limit int) ([]models.Application, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.customer_id, a.plan_id,
		       a.address_1, a.address_2, a.city, a.state, a.postcode,
		       a.status, p.type, p.name, p.monthly_cost
		FROM applications a
		JOIN plans p ON p.id = a.plan_id
		WHERE a.status = $1 AND p.type = $2 AND a.id > $3
		ORDER BY a.id ASC
		LIMIT $4`,
		models.StatusOrder, models.PlanTypeNBN, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("eligible page query failed: %w", err)
	}
	defer rows.Close()

	var apps []models.Application
	for rows.Next() {
		var (
			app      models.Application
			plan     models.Plan
			address2 sql.NullString
		)
		if err := rows.Scan(
			&app.ID, &app.CustomerID, &app.PlanID,
			&app.Address1, &address2, &app.City, &app.State, &app.Postcode,
			&app.Status, &plan.Type, &plan.Name, &plan.MonthlyCost,
		); err != nil {
			return nil, fmt.Errorf("eligible page scan failed: %w", err)
		}
		app.Address2 = address2.String
		plan.ID = app.PlanID
		app.Plan = &plan
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("eligible page rows failed: %w", err)
	}
	return apps, nil
}

// MarkComplete records a successful submission: sets the provider's order
// reference and moves the application to complete in a single update.
func (s *ApplicationStore) MarkComplete(ctx context.Context, id int64, orderID string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE applications
		SET order_id = $1, status = $2, updated_at = NOW()
		WHERE id = $3`,
		orderID, models.StatusComplete, id)
	if err != nil {
		return fmt.Errorf("mark complete failed for application %d: %w", id, err)
	}
	return nil
}

// MarkOrderFailed records a failed submission. order_id is left untouched.
func (s *ApplicationStore) MarkOrderFailed(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE applications
		SET status = $1, updated_at = NOW()
		WHERE id = $2`,
		models.StatusOrderFailed, id)
	if err != nil {
		return fmt.Errorf("mark order failed failed for application %d: %w", id, err)
	}
	return nil
}

// ListFilter narrows List to applications on a given plan type. The zero
// value means no filtering.
type ListFilter struct {
	PlanType models.PlanType
}

// List returns a page of applications with their customer and plan loaded,
// ordered oldest-created first.
func (s *ApplicationStore) List(ctx context.Context, filter ListFilter, offset, limit int) ([]models.Application, error) {
	query := `
		SELECT a.id, a.customer_id, a.plan_id,
		       a.address_1, a.address_2, a.city, a.state, a.postcode,
		       a.status, a.order_id, a.created_at, a.updated_at,
		       c.first_name, c.last_name,
		       p.type, p.name, p.monthly_cost
		FROM applications a
		JOIN customers c ON c.id = a.customer_id
		JOIN plans p ON p.id = a.plan_id`

	args := []interface{}{}
	if filter.PlanType != "" {
		query += ` WHERE p.type = $1`
		args = append(args, filter.PlanType)
	}
	query += fmt.Sprintf(` ORDER BY a.created_at ASC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list query failed: %w", err)
	}
	defer rows.Close()

	var apps []models.Application
	for rows.Next() {
		var (
			app      models.Application
			customer models.Customer
			plan     models.Plan
			address2 sql.NullString
			orderID  sql.NullString
		)
		if err := rows.Scan(
			&app.ID, &app.CustomerID, &app.PlanID,
			&app.Address1, &address2, &app.City, &app.State, &app.Postcode,
			&app.Status, &orderID, &app.CreatedAt, &app.UpdatedAt,
			&customer.FirstName, &customer.LastName,
			&plan.Type, &plan.Name, &plan.MonthlyCost,
		); err != nil {
			return nil, fmt.Errorf("list scan failed: %w", err)
		}
		app.Address2 = address2.String
		app.OrderID = orderID.String
		customer.ID = app.CustomerID
		plan.ID = app.PlanID
		app.Customer = &customer
		app.Plan = &plan
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rows failed: %w", err)
	}
	return apps, nil
}

// Count returns the number of applications matching the filter, for
// pagination metadata.
func (s *ApplicationStore) Count(ctx context.Context, filter ListFilter) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM applications a
		JOIN plans p ON p.id = a.plan_id`

	args := []interface{}{}
	if filter.PlanType != "" {
		query += ` WHERE p.type = $1`
		args = append(args, filter.PlanType)
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return total, nil
}
