// internal/workers/financing/update-application-status/handler_test.go
package updateapplicationstatus

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	commonerrors "dealer-assistant/internal/common/errors"
	"dealer-assistant/internal/common/logger"
	"dealer-assistant/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockEmailSender struct {
	SendEmailFunc func(ctx context.Context, to, subject, body string) (string, error)
	calls         int
	lastBody      string
}

func (m *MockEmailSender) SendEmail(ctx context.Context, to, subject, body string) (string, error) {
	m.calls++
	m.lastBody = body
	return m.SendEmailFunc(ctx, to, subject, body)
}

type MockSMSSender struct {
	SendSMSFunc func(ctx context.Context, phone, message string) (string, error)
	calls       int
}

func (m *MockSMSSender) SendSMS(ctx context.Context, phone, message string) (string, error) {
	m.calls++
	return m.SendSMSFunc(ctx, phone, message)
}

// ==========================
// Test Helper Functions
// ==========================

var applicationColumns = []string{
	"id", "vehicle_id", "loan_amount", "down_payment", "loan_term", "status",
	"approved_amount", "interest_rate", "monthly_payment", "remarks",
	"name", "email", "phone",
}

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func createTestConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       5 * time.Second,
		EmailEnabled:  true,
		SMSEnabled:    true,
	}
}

func okEmail() *MockEmailSender {
	return &MockEmailSender{SendEmailFunc: func(ctx context.Context, to, subject, body string) (string, error) {
		return "ses-1", nil
	}}
}

func okSMS() *MockSMSSender {
	return &MockSMSSender{SendSMSFunc: func(ctx context.Context, phone, message string) (string, error) {
		return "sns-1", nil
	}}
}

func newTestHandler(t *testing.T, db *sql.DB, email EmailSender, sms SMSSender) *Handler {
	h := NewHandler(createTestConfig(), db, email, sms, logger.NewTestLogger(t))
	h.now = func() time.Time { return fixedNow }
	return h
}

func expectApplication(mock sqlmock.Sqlmock, status string) {
	mock.ExpectQuery(`SELECT (.+) FROM financing_applications`).
		WithArgs("fin-001").
		WillReturnRows(sqlmock.NewRows(applicationColumns).AddRow(
			"fin-001", "veh-001", 2500000.0, 500000.0, 48, status,
			nil, nil, nil, nil,
			"Jane Wanjiru", "jane@example.com", "+254700000001",
		))
}

func floatPtr(f float64) *float64 { return &f }

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Approved(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	expectApplication(mock, "under-review")
	mock.ExpectExec(`UPDATE financing_applications`).
		WithArgs("fin-001", "approved", 2000000.0, 12.0, 52667.67, nil, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs("financing_status_updated", "financing_application", "fin-001", sqlmock.AnyArg(), fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	email, sms := okEmail(), okSMS()
	h := newTestHandler(t, db, email, sms)

	out, err := h.Execute(context.Background(), &Input{
		ApplicationID:  "fin-001",
		Status:         models.FinancingApproved,
		ApprovedAmount: floatPtr(2_000_000),
		InterestRate:   floatPtr(12),
	})
	require.NoError(t, err)

	assert.Equal(t, "under-review", out.PreviousStatus)
	assert.Equal(t, "approved", out.Status)
	require.NotNil(t, out.MonthlyPayment)
	assert.Equal(t, 52667.67, *out.MonthlyPayment)
	assert.Equal(t, "2026-03-14T09:30:00Z", out.UpdatedAt)

	require.Len(t, out.Notifications, 2)
	assert.Equal(t, ChannelEmail, out.Notifications[0].Channel)
	assert.Equal(t, StatusSent, out.Notifications[0].Status)
	assert.Equal(t, ChannelSMS, out.Notifications[1].Channel)
	assert.Equal(t, StatusSent, out.Notifications[1].Status)
	assert.NotEmpty(t, out.Notifications[0].ID)

	assert.Contains(t, email.lastBody, "Hello Jane Wanjiru")
	assert.Contains(t, email.lastBody, "Approved amount: Ksh 2,000,000")
	assert.Contains(t, email.lastBody, "Monthly payment: Ksh 52,667.67 over 48 months")
	assert.Equal(t, 1, sms.calls)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_RejectedSendsEmailOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	expectApplication(mock, "pending")
	mock.ExpectExec(`UPDATE financing_applications`).
		WithArgs("fin-001", "rejected", nil, nil, nil, "Insufficient income", fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectExec(`INSERT INTO audit_log`).WillReturnResult(sqlmock.NewResult(1, 1))

	email, sms := okEmail(), okSMS()
	h := newTestHandler(t, db, email, sms)

	out, err := h.Execute(context.Background(), &Input{
		ApplicationID: "fin-001",
		Status:        models.FinancingRejected,
		Remarks:       "Insufficient income",
	})
	require.NoError(t, err)

	assert.Nil(t, out.MonthlyPayment)
	require.Len(t, out.Notifications, 1)
	assert.Equal(t, ChannelEmail, out.Notifications[0].Channel)
	assert.Contains(t, email.lastBody, "Remarks: Insufficient income")
	assert.Equal(t, 0, sms.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_ApprovedWithoutTermsSkipsPayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	expectApplication(mock, "pending")
	mock.ExpectExec(`UPDATE financing_applications`).
		WithArgs("fin-001", "approved", 1800000.0, nil, nil, nil, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectExec(`INSERT INTO audit_log`).WillReturnResult(sqlmock.NewResult(1, 1))

	h := newTestHandler(t, db, okEmail(), okSMS())
	out, err := h.Execute(context.Background(), &Input{
		ApplicationID:  "fin-001",
		Status:         models.FinancingApproved,
		ApprovedAmount: floatPtr(1_800_000),
	})
	require.NoError(t, err)
	assert.Nil(t, out.MonthlyPayment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM financing_applications`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(applicationColumns))
	mock.ExpectRollback()

	h := newTestHandler(t, db, okEmail(), okSMS())
	_, err = h.Execute(context.Background(), &Input{ApplicationID: "missing", Status: models.FinancingApproved})

	require.Error(t, err)
	assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeApplicationNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_InvalidTransition(t *testing.T) {
	tests := []struct {
		name    string
		current string
		next    models.FinancingStatus
	}{
		{name: "approved is terminal", current: "approved", next: models.FinancingRejected},
		{name: "rejected is terminal", current: "rejected", next: models.FinancingUnderReview},
		{name: "no return to pending", current: "under-review", next: models.FinancingPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectBegin()
			expectApplication(mock, tt.current)
			mock.ExpectRollback()

			email := okEmail()
			h := newTestHandler(t, db, email, okSMS())
			_, err = h.Execute(context.Background(), &Input{ApplicationID: "fin-001", Status: tt.next})

			require.Error(t, err)
			assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeInvalidStatusTransition))
			assert.Equal(t, 0, email.calls)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHandler_Execute_UpdateFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	expectApplication(mock, "pending")
	mock.ExpectExec(`UPDATE financing_applications`).WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	email := okEmail()
	h := newTestHandler(t, db, email, okSMS())
	_, err = h.Execute(context.Background(), &Input{ApplicationID: "fin-001", Status: models.FinancingUnderReview})

	require.Error(t, err)
	assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeDatabaseUpdateFailed))
	assert.Equal(t, 0, email.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_NotificationFailureDoesNotFail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	expectApplication(mock, "pending")
	mock.ExpectExec(`UPDATE financing_applications`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectExec(`INSERT INTO audit_log`).WillReturnError(errors.New("audit table missing"))

	email := &MockEmailSender{SendEmailFunc: func(ctx context.Context, to, subject, body string) (string, error) {
		return "", errors.New("MessageRejected")
	}}
	sms := &MockSMSSender{SendSMSFunc: func(ctx context.Context, phone, message string) (string, error) {
		return "", errors.New("throttled")
	}}
	h := newTestHandler(t, db, email, sms)

	out, err := h.Execute(context.Background(), &Input{
		ApplicationID:  "fin-001",
		Status:         models.FinancingApproved,
		ApprovedAmount: floatPtr(2_000_000),
		InterestRate:   floatPtr(12),
	})
	require.NoError(t, err)

	require.Len(t, out.Notifications, 2)
	assert.Equal(t, StatusFailed, out.Notifications[0].Status)
	assert.Equal(t, StatusFailed, out.Notifications[1].Status)
	assert.Empty(t, out.Notifications[0].SentAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_ChannelsDisabled(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	expectApplication(mock, "pending")
	mock.ExpectExec(`UPDATE financing_applications`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectExec(`INSERT INTO audit_log`).WillReturnResult(sqlmock.NewResult(1, 1))

	h := NewHandler(&Config{Timeout: time.Second}, db, nil, nil, logger.NewNoOpLogger())
	out, err := h.Execute(context.Background(), &Input{ApplicationID: "fin-001", Status: models.FinancingApproved})
	require.NoError(t, err)

	for _, n := range out.Notifications {
		assert.Equal(t, StatusDisabled, n.Status)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Input Parsing Tests
// ==========================

func TestParseInput(t *testing.T) {
	tests := []struct {
		name      string
		variables string
		wantErr   bool
	}{
		{name: "approval", variables: `{"applicationId": "fin-001", "status": "approved", "approvedAmount": 2000000, "interestRate": 12}`},
		{name: "review", variables: `{"applicationId": "fin-001", "status": "under-review"}`},
		{name: "unknown status", variables: `{"applicationId": "fin-001", "status": "cancelled"}`, wantErr: true},
		{name: "missing id", variables: `{"status": "approved"}`, wantErr: true},
		{name: "zero rate", variables: `{"applicationId": "fin-001", "status": "approved", "interestRate": 0}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := parseInput(tt.variables)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "fin-001", in.ApplicationID)
		})
	}
}
