package v1

import (
	"github.com/envelope-zero/salvadanaio/internal/ledger"
	"github.com/shopspring/decimal"
)

type DistributionValidate struct {
	Total        decimal.Decimal     `json:"total" example:"2500"`                     // The lump amount
	Distribution ledger.Distribution `json:"distribution" swaggertype:"object,number"` // Amount per envelope name
}

type DistributionEditable struct {
	Kind         ledger.Kind         `json:"kind" example:"salary" enums:"income,salary"` // Kind of the income transaction
	Account      string              `json:"account" example:"Checking"`                  // Account that receives the money
	Total        decimal.Decimal     `json:"total" example:"2500"`                        // The lump amount
	Description  string              `json:"description" example:"Paycheck"`              // Description for all recorded transactions
	Category     string              `json:"category" example:"Salary"`                   // Category for all recorded transactions
	Distribution ledger.Distribution `json:"distribution" swaggertype:"object,number"`    // Amount per envelope name. If omitted, the automatic distribution is used
}

func (e DistributionEditable) input() ledger.DistributionInput {
	return ledger.DistributionInput{
		Kind:         e.Kind,
		Account:      e.Account,
		Total:        e.Total,
		Description:  e.Description,
		Category:     e.Category,
		Distribution: e.Distribution,
	}
}

type DistributionResponse struct {
	Data  ledger.Distribution `json:"data" swaggertype:"object,number"`                                   // Amount per envelope name
	Error *string             `json:"error" example:"the total query parameter must be a decimal number"` // The error, if any occurred
}

type Suggestion struct {
	Envelope string          `json:"envelope" example:"Rent"`                                     // Name of the envelope
	Amount   decimal.Decimal `json:"amount" example:"400"`                                        // Suggested amount
	Reason   string          `json:"reason" example:"400.00 missing to reach the monthly refill"` // Why the envelope is suggested
	Priority ledger.Priority `json:"priority" swaggertype:"string" enums:"low,medium,high"`       // Priority of the suggestion
}

type SuggestionListResponse struct {
	Data  []Suggestion `json:"data"`                                                                // Suggestions, highest priority first
	Error *string      `json:"error" example:"the amount query parameter must be a decimal number"` // The error, if any occurred
}

type Validation struct {
	Valid   bool   `json:"valid" example:"true"`                                 // The distribution matches the total within one cent
	Message string `json:"message" example:"The distribution matches the total"` // Human readable result
}

type ValidationResponse struct {
	Data  *Validation `json:"data"`                                               // Result of the validation
	Error *string     `json:"error" example:"the request body must not be empty"` // The error, if any occurred
}

type DistributionApplyResponse struct {
	Data        []Transaction   `json:"data"`                                                             // The recorded income transaction followed by one distribution per envelope
	Unallocated decimal.Decimal `json:"unallocated" example:"0"`                                          // Part of the total that stays in the account. Only the automatic distribution leaves money unallocated
	Error       *string         `json:"error" example:"the distribution does not match the total amount"` // The error, if any occurred
}
