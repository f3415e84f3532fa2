package v1

import (
	"fmt"
	"time"

	"github.com/envelope-zero/salvadanaio/internal/ledger"
	"github.com/envelope-zero/salvadanaio/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EnvelopeEditable struct {
	Name          string              `json:"name" example:"Groceries"`                                                     // Name of the envelope
	Category      string              `json:"category" example:"Home"`                                                      // Category label
	Color         string              `json:"color" example:"#8ad4a0"`                                                      // Display color
	Kind          ledger.EnvelopeKind `json:"kind" example:"recurringRefill" enums:"fixedTarget,recurringRefill,openEnded"` // Kind of the envelope
	TargetAmount  decimal.Decimal     `json:"targetAmount" example:"1200"`                                                  // Amount to save. Only for fixedTarget
	TargetDate    *time.Time          `json:"targetDate" example:"2024-12-24T00:00:00Z"`                                    // Optional deadline. Only for fixedTarget
	MonthlyRefill decimal.Decimal     `json:"monthlyRefill" example:"400"`                                                  // Amount the envelope is refilled to every month. Only for recurringRefill
}

// goal returns the ledger goal for the editable values.
func (e EnvelopeEditable) goal() (ledger.Goal, error) {
	switch e.Kind {
	case ledger.KindFixedTarget:
		return ledger.FixedTarget{Amount: e.TargetAmount, Date: e.TargetDate}, nil
	case ledger.KindRecurringRefill:
		return ledger.RecurringRefill{MonthlyRefill: e.MonthlyRefill}, nil
	case ledger.KindOpenEnded, "":
		return ledger.OpenEnded{}, nil
	}

	return nil, fmt.Errorf("%w, got '%s'", errEnvelopeKindUnknown, e.Kind)
}

func (e EnvelopeEditable) input() (ledger.EnvelopeInput, error) {
	goal, err := e.goal()
	if err != nil {
		return ledger.EnvelopeInput{}, err
	}

	return ledger.EnvelopeInput{
		Name:     e.Name,
		Category: e.Category,
		Color:    e.Color,
		Goal:     goal,
	}, nil
}

// newEnvelopeEditable returns the editable values of an envelope.
func newEnvelopeEditable(e *ledger.Envelope) EnvelopeEditable {
	editable := EnvelopeEditable{
		Name:     e.Name,
		Category: e.Category,
		Color:    e.Color,
		Kind:     e.Kind(),
	}

	switch g := e.Goal.(type) {
	case ledger.FixedTarget:
		editable.TargetAmount = g.Amount
		if g.Date != nil {
			d := *g.Date
			editable.TargetDate = &d
		}
	case ledger.RecurringRefill:
		editable.MonthlyRefill = g.MonthlyRefill
	}

	return editable
}

type EnvelopeCreate struct {
	EnvelopeEditable
	InitialAmount decimal.Decimal `json:"initialAmount" example:"50"`       // Amount moved into the envelope on creation
	SourceAccount string          `json:"sourceAccount" example:"Checking"` // Account the initial amount is taken from
}

type EnvelopeLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/envelopes/45b6b5b9-f746-4ae9-b77b-7688b91f8166"` // The envelope itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?envelope=Groceries"`        // Transactions referencing this envelope
}

// Envelope is the API representation of an envelope.
type Envelope struct {
	ID        uuid.UUID `json:"id" example:"45b6b5b9-f746-4ae9-b77b-7688b91f8166"` // ID of the envelope
	CreatedAt time.Time `json:"createdAt" example:"2022-04-02T19:28:44.491514Z"`   // Time the envelope was created
	EnvelopeEditable
	CurrentAmount decimal.Decimal `json:"currentAmount" example:"123.45"` // Amount in the envelope. Negative if overdrawn
	Needed        decimal.Decimal `json:"needed" example:"276.55"`        // Amount missing to reach the target or refill
	Reached       bool            `json:"reached" example:"false"`        // Fixed targets only: the target amount is reached
	Overdrawn     bool            `json:"overdrawn" example:"false"`      // More money was taken out than was put in
	Links         EnvelopeLinks   `json:"links"`
}

func newEnvelope(c *gin.Context, e *ledger.Envelope) Envelope {
	url := c.GetString(string(models.DBContextURL))

	return Envelope{
		ID:               e.ID,
		CreatedAt:        e.CreatedAt,
		EnvelopeEditable: newEnvelopeEditable(e),
		CurrentAmount:    e.CurrentAmount,
		Needed:           e.Needed(),
		Reached:          e.Reached(),
		Overdrawn:        e.Overdrawn(),
		Links: EnvelopeLinks{
			Self:         fmt.Sprintf("%s/v1/envelopes/%s", url, e.ID),
			Transactions: transactionsURL(url, "envelope", e.Name),
		},
	}
}

type EnvelopeListResponse struct {
	Data  []Envelope `json:"data"`                                                          // List of envelopes
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type EnvelopeResponse struct {
	Data  *Envelope `json:"data"`                                                          // Data for the envelope
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this envelope
}

type EnvelopeCreateResponse struct {
	Data  []EnvelopeResponse `json:"data"`                                                          // List of created envelopes
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *EnvelopeCreateResponse) appendError(err error, currentStatus int) int {
	r.Data = append(r.Data, EnvelopeResponse{Error: errorString(err)})
	return highestStatus(err, currentStatus)
}
