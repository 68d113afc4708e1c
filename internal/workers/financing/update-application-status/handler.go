// internal/workers/financing/update-application-status/handler.go
package updateapplicationstatus

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"dealer-assistant/internal/assistant/response"
	commonerrors "dealer-assistant/internal/common/errors"
	"dealer-assistant/internal/common/logger"
	"dealer-assistant/internal/common/metrics"
	"dealer-assistant/internal/financing/amortization"
	"dealer-assistant/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "update-application-status"
)

const approvedSMS = "Your financing application has been approved! Check your email for details."

// EmailSender is satisfied by the SES client in internal/common/aws.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) (string, error)
}

// SMSSender is satisfied by the SNS client in internal/common/aws.
type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) (string, error)
}

type Handler struct {
	config       *Config
	db           *sql.DB
	logger       logger.Logger
	email        EmailSender
	sms          SMSSender
	errorHandler *commonerrors.ErrorHandler
	now          func() time.Time
}

// NewHandler builds the worker. email and sms may be nil when the channel is disabled.
func NewHandler(config *Config, db *sql.DB, email EmailSender, sms SMSSender, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		db:           db,
		logger:       log,
		email:        email,
		sms:          sms,
		errorHandler: commonerrors.NewErrorHandler(log),
		now:          time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	started := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := parseInput(job.Variables)
	if err != nil {
		h.failJob(ctx, client, job, err, started)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.failJob(ctx, client, job, err, started)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.JobCompleted(TaskType, started)
}

// Execute moves the application to input.Status, storing the monthly payment on approval, and
// notifies the applicant. Notification failures are reported in the output only.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if !input.Status.Valid() {
		return nil, commonerrors.NewValidationError(fmt.Sprintf("unknown status %q", input.Status), nil)
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, commonerrors.NewDatabaseUpdateFailedError(err)
	}
	defer func() { _ = tx.Rollback() }()

	app, err := loadApplication(ctx, tx, input.ApplicationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, commonerrors.NewApplicationNotFoundError(input.ApplicationID)
	}
	if err != nil {
		return nil, commonerrors.NewDatabaseUpdateFailedError(err)
	}

	if !app.Status.CanTransitionTo(input.Status) {
		return nil, commonerrors.NewInvalidStatusTransitionError(string(app.Status), string(input.Status))
	}

	var monthly *float64
	if input.Status == models.FinancingApproved && input.ApprovedAmount != nil && input.InterestRate != nil && app.LoanTerm > 0 {
		res, err := amortization.Calculate(*input.ApprovedAmount, *input.InterestRate, app.LoanTerm)
		if err != nil {
			return nil, err
		}
		monthly = &res.MonthlyPayment
	}

	updatedAt := h.now().UTC()
	if _, err := tx.ExecContext(ctx, `
		UPDATE financing_applications
		SET status = $2,
			approved_amount = COALESCE($3, approved_amount),
			interest_rate = COALESCE($4, interest_rate),
			monthly_payment = COALESCE($5, monthly_payment),
			remarks = COALESCE($6, remarks),
			updated_at = $7
		WHERE id = $1`,
		app.ID,
		string(input.Status),
		input.ApprovedAmount,
		input.InterestRate,
		monthly,
		nullString(input.Remarks),
		updatedAt,
	); err != nil {
		return nil, commonerrors.NewDatabaseUpdateFailedError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, commonerrors.NewDatabaseUpdateFailedError(err)
	}

	h.writeAuditLog(ctx, app, input, updatedAt)

	h.logger.Info("financing status updated", map[string]interface{}{
		"applicationId":  app.ID,
		"previousStatus": string(app.Status),
		"status":         string(input.Status),
	})

	return &Output{
		ApplicationID:  app.ID,
		PreviousStatus: string(app.Status),
		Status:         string(input.Status),
		MonthlyPayment: monthly,
		Notifications:  h.notify(ctx, app, input, monthly),
		UpdatedAt:      updatedAt.Format(time.RFC3339),
	}, nil
}

func loadApplication(ctx context.Context, tx *sql.Tx, id string) (*models.FinancingApplication, error) {
	var (
		app                           models.FinancingApplication
		approved, rate, monthly       sql.NullFloat64
		remarks, applicantName, phone sql.NullString
	)
	err := tx.QueryRowContext(ctx, `
		SELECT f.id, f.vehicle_id, f.loan_amount, f.down_payment, f.loan_term, f.status,
			f.approved_amount, f.interest_rate, f.monthly_payment, f.remarks,
			u.name, u.email, u.phone
		FROM financing_applications f
		JOIN users u ON u.id = f.user_id
		WHERE f.id = $1
		FOR UPDATE OF f`, id).Scan(
		&app.ID, &app.VehicleID, &app.LoanAmount, &app.DownPayment, &app.LoanTerm, &app.Status,
		&approved, &rate, &monthly, &remarks,
		&applicantName, &app.ApplicantEmail, &phone,
	)
	if err != nil {
		return nil, err
	}

	app.ApprovedAmount = floatOrNil(approved)
	app.InterestRate = floatOrNil(rate)
	app.MonthlyPayment = floatOrNil(monthly)
	app.Remarks = remarks.String
	app.ApplicantName = applicantName.String
	app.ApplicantPhone = phone.String
	return &app, nil
}

// writeAuditLog is best effort; the status change has already been committed.
func (h *Handler) writeAuditLog(ctx context.Context, app *models.FinancingApplication, input *Input, at time.Time) {
	details, err := json.Marshal(map[string]interface{}{
		"from":           string(app.Status),
		"to":             string(input.Status),
		"approvedAmount": input.ApprovedAmount,
		"interestRate":   input.InterestRate,
	})
	if err != nil {
		details = []byte("{}")
	}

	if _, err := h.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		"financing_status_updated",
		"financing_application",
		app.ID,
		details,
		at,
	); err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":         err,
			"applicationId": app.ID,
		})
	}
}

func (h *Handler) notify(ctx context.Context, app *models.FinancingApplication, input *Input, monthly *float64) []models.Notification {
	notifications := []models.Notification{
		h.sendEmail(ctx, app, input, monthly),
	}
	if input.Status == models.FinancingApproved {
		notifications = append(notifications, h.sendSMS(ctx, app))
	}
	return notifications
}

func (h *Handler) sendEmail(ctx context.Context, app *models.FinancingApplication, input *Input, monthly *float64) models.Notification {
	n := h.newNotification(app.ID, TypeStatusUpdate, ChannelEmail)
	if !h.config.EmailEnabled || h.email == nil || app.ApplicantEmail == "" {
		return n
	}

	if _, err := h.email.SendEmail(ctx, app.ApplicantEmail, "Update on your financing application",
		statusEmailBody(app, input, monthly)); err != nil {
		h.logger.Error("email send failed", map[string]interface{}{
			"error":         commonerrors.NewNotificationSendFailedError(ChannelEmail, err),
			"applicationId": app.ID,
		})
		n.Status = StatusFailed
		return n
	}
	n.Status = StatusSent
	n.SentAt = h.now().UTC().Format(time.RFC3339)
	return n
}

func (h *Handler) sendSMS(ctx context.Context, app *models.FinancingApplication) models.Notification {
	n := h.newNotification(app.ID, TypeApproved, ChannelSMS)
	if !h.config.SMSEnabled || h.sms == nil || app.ApplicantPhone == "" {
		return n
	}

	if _, err := h.sms.SendSMS(ctx, app.ApplicantPhone, approvedSMS); err != nil {
		h.logger.Error("SMS send failed", map[string]interface{}{
			"error":         commonerrors.NewNotificationSendFailedError(ChannelSMS, err),
			"applicationId": app.ID,
		})
		n.Status = StatusFailed
		return n
	}
	n.Status = StatusSent
	n.SentAt = h.now().UTC().Format(time.RFC3339)
	return n
}

func (h *Handler) newNotification(applicationID, notificationType, channel string) models.Notification {
	return models.Notification{
		ID:            uuid.New().String(),
		ApplicationID: applicationID,
		Type:          notificationType,
		Channel:       channel,
		Status:        StatusDisabled,
	}
}

func statusEmailBody(app *models.FinancingApplication, input *Input, monthly *float64) string {
	var b strings.Builder
	name := app.ApplicantName
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&b, "Hello %s,\n\nYour financing application is now %s.\n", name, input.Status)

	if input.ApprovedAmount != nil {
		fmt.Fprintf(&b, "\nApproved amount: %s", response.Currency(*input.ApprovedAmount))
	}
	if input.InterestRate != nil {
		fmt.Fprintf(&b, "\nInterest rate: %g%%", *input.InterestRate)
	}
	if monthly != nil {
		fmt.Fprintf(&b, "\nMonthly payment: %s over %d months", response.Currency(*monthly), app.LoanTerm)
	}
	if input.Remarks != "" {
		fmt.Fprintf(&b, "\n\nRemarks: %s", input.Remarks)
	}
	return b.String()
}

func parseInput(variables string) (*Input, error) {
	result, err := inputSchema.ValidateJSON(variables)
	if err != nil {
		return nil, commonerrors.NewValidationError("job variables are not valid JSON", err)
	}
	if !result.Valid {
		return nil, commonerrors.NewValidationError(result.Summary(), nil)
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, commonerrors.NewValidationError("parse input", err)
	}
	return &input, nil
}

func floatOrNil(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error, started time.Time) {
	metrics.JobFailed(TaskType, string(commonerrors.Normalize(err).Code), started)
	h.errorHandler.HandleJobError(ctx, client, job, err)
}
