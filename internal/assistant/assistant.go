// Package assistant answers dealership chat messages: classify, extract slots, consult
// inventory when the intent needs it, format the reply, record the turn.
package assistant

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"dealer-assistant/internal/assistant/intent"
	"dealer-assistant/internal/assistant/query"
	"dealer-assistant/internal/assistant/response"
	"dealer-assistant/internal/assistant/session"
	"dealer-assistant/internal/assistant/slots"
	commonerrors "dealer-assistant/internal/common/errors"
	"dealer-assistant/internal/common/logger"
	"dealer-assistant/internal/financing/amortization"
	"dealer-assistant/internal/models"
)

// IntentReset is reported for the session reset command. It is not a classifier intent.
const IntentReset intent.Intent = "Reset"

var resetCommands = map[string]bool{"reset": true, "/reset": true, "clear": true}

// Inventory is the read-only vehicle source consulted for VehicleInquiry, Price and
// Availability messages.
type Inventory interface {
	Find(ctx context.Context, q query.Query) ([]models.VehicleSummary, error)
	Count(ctx context.Context, q query.Query) (int, error)
}

// Metrics receives one call per answered message.
type Metrics interface {
	TurnCompleted(intent string, elapsed time.Duration)
	LookupFailed()
}

// Options configures New. Only Inventory is required.
type Options struct {
	Inventory Inventory
	Store     session.Store  // defaults to a MemoryStore
	Rand      rand.Source    // defaults to a time-seeded source
	Clock     func() time.Time
	Logger    logger.Logger
	Metrics   Metrics
}

// Assistant is safe for concurrent use across sessions. Turns within one session must be
// submitted one at a time.
type Assistant struct {
	inventory Inventory
	store     session.Store
	formatter *response.Formatter
	now       func() time.Time
	logger    logger.Logger
	metrics   Metrics
}

// Reply is the outcome of one turn.
type Reply struct {
	Text   string
	Intent intent.Intent
	Slots  slots.SlotSet
}

func New(opts Options) (*Assistant, error) {
	if opts.Inventory == nil {
		return nil, errors.New("assistant: inventory is required")
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Store == nil {
		opts.Store = session.NewMemoryStore(opts.Clock)
	}
	if opts.Rand == nil {
		opts.Rand = rand.NewSource(opts.Clock().UnixNano())
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNoOpLogger()
	}
	if opts.Metrics == nil {
		opts.Metrics = noopMetrics{}
	}

	return &Assistant{
		inventory: opts.Inventory,
		store:     opts.Store,
		formatter: response.NewFormatter(opts.Rand),
		now:       opts.Clock,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
	}, nil
}

// Handle answers message on behalf of sessionID and returns the reply text.
func (a *Assistant) Handle(ctx context.Context, message, sessionID string) (string, error) {
	reply, err := a.Respond(ctx, message, sessionID)
	if err != nil {
		return "", err
	}
	return reply.Text, nil
}

// Respond is Handle with the classification details. Inventory failures never surface here;
// only session store errors do, as SESSION_STORE_FAILED.
func (a *Assistant) Respond(ctx context.Context, message, sessionID string) (*Reply, error) {
	start := a.now()
	log := a.logger.WithFields(map[string]interface{}{"sessionId": sessionID})

	if resetCommands[strings.ToLower(strings.TrimSpace(message))] {
		if err := a.store.Clear(ctx, sessionID); err != nil {
			return nil, commonerrors.NewSessionStoreFailedError(sessionID, err)
		}
		log.Info("session cleared", nil)
		a.metrics.TurnCompleted(string(IntentReset), a.now().Sub(start))
		return &Reply{Text: response.ResetDone, Intent: IntentReset}, nil
	}

	in := intent.Classify(message)
	s := slots.Extract(message)
	log.Debug("message classified", map[string]interface{}{
		"intent":   string(in),
		"make":     s.Make,
		"bodyType": s.BodyType,
		"priceMax": s.PriceMax,
	})

	text := a.compose(ctx, log, in, s, message)

	if err := a.record(ctx, sessionID, in, message, text); err != nil {
		return nil, commonerrors.NewSessionStoreFailedError(sessionID, err)
	}

	a.metrics.TurnCompleted(string(in), a.now().Sub(start))
	return &Reply{Text: text, Intent: in, Slots: s}, nil
}

func (a *Assistant) compose(ctx context.Context, log logger.Logger, in intent.Intent, s slots.SlotSet, message string) string {
	q, needsInventory := query.Build(in, s)
	if !needsInventory {
		if in == intent.Financing {
			return a.financingReply(log, message)
		}
		return a.formatter.Static(in)
	}

	if q.CountOnly {
		count, err := a.inventory.Count(ctx, q)
		if err != nil {
			return a.lookupFailed(log, in, err)
		}
		return a.formatter.Availability(count, q.Make)
	}

	vehicles, err := a.inventory.Find(ctx, q)
	if err != nil {
		return a.lookupFailed(log, in, err)
	}
	if in == intent.Price {
		return a.formatter.PriceList(vehicles, q.PriceMax)
	}
	return a.formatter.VehicleList(vehicles)
}

func (a *Assistant) lookupFailed(log logger.Logger, in intent.Intent, err error) string {
	log.Warn("inventory lookup failed", map[string]interface{}{
		"intent": string(in),
		"error":  err,
	})
	a.metrics.LookupFailed()
	return response.LookupFailure
}

func (a *Assistant) financingReply(log logger.Logger, message string) string {
	text := a.formatter.Static(intent.Financing)

	terms, ok := parseLoanTerms(message)
	if !ok {
		return text
	}
	res, err := a.Quote(terms.principal, terms.annualRate, terms.months)
	if err != nil {
		log.Debug("quote skipped", map[string]interface{}{"error": err})
		return text
	}
	return text + "\n\n" + a.formatter.PaymentQuote(terms.principal, terms.annualRate, terms.months,
		res.MonthlyPayment, res.TotalPayment)
}

// Quote runs the amortization calculator for an on-demand chat estimate.
func (a *Assistant) Quote(principal, annualRatePercent float64, termMonths int) (*amortization.Result, error) {
	return amortization.Calculate(principal, annualRatePercent, termMonths)
}

func (a *Assistant) record(ctx context.Context, sessionID string, in intent.Intent, message, reply string) error {
	if err := a.store.AppendTurn(ctx, sessionID, session.RoleUser, message); err != nil {
		return err
	}
	if err := a.store.AppendTurn(ctx, sessionID, session.RoleAssistant, reply); err != nil {
		return err
	}
	return a.store.SetContext(ctx, sessionID, "lastIntent", string(in))
}

// History returns the stored turns for a session.
func (a *Assistant) History(ctx context.Context, sessionID string) ([]session.Turn, error) {
	s, err := a.store.Load(ctx, sessionID)
	if err != nil {
		return nil, commonerrors.NewSessionStoreFailedError(sessionID, err)
	}
	return s.History, nil
}

type noopMetrics struct{}

func (noopMetrics) TurnCompleted(string, time.Duration) {}
func (noopMetrics) LookupFailed()                       {}
