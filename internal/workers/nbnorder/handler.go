// internal/workers/nbnorder/handler.go
package nbnorder

import (
	"context"
	"time"

	"nbn-order-service/internal/common/logger"
	"nbn-order-service/internal/common/metrics"
	"nbn-order-service/internal/provisioning"

	"github.com/google/uuid"
)

const (
	TaskType = "submit-nbn-order"
)

// Store is the slice of the application store the submission job writes to.
type Store interface {
	MarkComplete(ctx context.Context, id int64, orderID string) error
	MarkOrderFailed(ctx context.Context, id int64) error
}

// Submitter is the outbound provisioning call.
type Submitter interface {
	Submit(ctx context.Context, order *provisioning.OrderRequest, idempotencyKey string) (*provisioning.OrderResult, error)
}

// Handler submits one application to the provisioning endpoint and records
// the outcome. It runs once per enqueue; there are no retries. A failed
// submission is persisted as order_failed and swallowed — the status row is
// the only signal (operators act on it).
type Handler struct {
	config    *Config
	store     Store
	submitter Submitter
	logger    logger.Logger
}

func NewHandler(config *Config, store Store, submitter Submitter, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		store:     store,
		submitter: submitter,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// Handle is the pool-facing entrypoint: it applies the job timeout, runs the
// submission and reports metrics. The returned error is a store-write
// failure only; submission failures never propagate.
func (h *Handler) Handle(ctx context.Context, input *Input) error {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	metrics.JobsActive.Inc()
	defer metrics.JobsActive.Dec()

	start := time.Now()
	output, err := h.Execute(ctx, input)
	metrics.SubmissionDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("store_error").Inc()
		h.logger.Error("submission state update failed", map[string]interface{}{
			"applicationId": input.ApplicationID,
			"error":         err,
		})
		return err
	}

	metrics.SubmissionsTotal.WithLabelValues(string(output.Outcome)).Inc()
	return nil
}

// Execute performs exactly one outbound call and exactly one persisted
// status update.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	order := &provisioning.OrderRequest{
		Address1: input.Address1,
		City:     input.City,
		State:    input.State,
		Postcode: input.Postcode,
		PlanName: input.PlanName,
	}
	if input.Address2 != "" {
		order.Address2 = &input.Address2
	}

	if err := provisioning.ValidateOrderRequest(order); err != nil {
		h.logger.Warn("order payload failed contract validation", map[string]interface{}{
			"applicationId": input.ApplicationID,
			"error":         err,
		})
		return h.recordFailure(ctx, input)
	}

	result, err := h.submitter.Submit(ctx, order, uuid.New().String())
	if err != nil {
		// Transport or parse failure: treated identically to a decline.
		h.logger.Warn("order submission failed", map[string]interface{}{
			"applicationId": input.ApplicationID,
			"error":         err,
		})
		return h.recordFailure(ctx, input)
	}

	if !result.Successful() {
		h.logger.Info("order declined by provisioning endpoint", map[string]interface{}{
			"applicationId": input.ApplicationID,
			"httpStatus":    result.HTTPStatus,
			"status":        result.Status,
		})
		return h.recordFailure(ctx, input)
	}

	if err := h.store.MarkComplete(ctx, input.ApplicationID, result.ID); err != nil {
		return nil, err
	}

	h.logger.Info("order provisioned", map[string]interface{}{
		"applicationId": input.ApplicationID,
		"orderId":       result.ID,
	})

	return &Output{
		ApplicationID: input.ApplicationID,
		Outcome:       OutcomeComplete,
		OrderID:       result.ID,
	}, nil
}

func (h *Handler) recordFailure(ctx context.Context, input *Input) (*Output, error) {
	if err := h.store.MarkOrderFailed(ctx, input.ApplicationID); err != nil {
		return nil, err
	}
	return &Output{
		ApplicationID: input.ApplicationID,
		Outcome:       OutcomeOrderFailed,
	}, nil
}
