package v1

import (
	"fmt"
	"net/url"
	"time"

	"github.com/envelope-zero/salvadanaio/internal/ledger"
	"github.com/envelope-zero/salvadanaio/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionEditable struct {
	Kind        ledger.Kind     `json:"kind" example:"expense" enums:"expense,income,salary,distribution,transfer,transferEnvelope"` // Kind of the transaction
	Amount      decimal.Decimal `json:"amount" example:"14.03"`                                                                      // The amount, always positive
	Description string          `json:"description" example:"Lunch"`                                                                 // Description
	Category    string          `json:"category" example:"Food"`                                                                     // Category label
	Date        time.Time       `json:"date" example:"1815-12-10T18:43:00.271152Z"`                                                  // Date of the transaction. Defaults to now
	Account     string          `json:"account" example:"Checking"`                                                                  // Primary account, the source envelope for transferEnvelope
	Target      string          `json:"target" example:"Groceries"`                                                                  // Envelope for expense, distribution and transferEnvelope, destination account for transfer
}

func (e TransactionEditable) input() ledger.TransactionInput {
	return ledger.TransactionInput{
		Kind:        e.Kind,
		Amount:      e.Amount,
		Description: e.Description,
		Category:    e.Category,
		Date:        e.Date,
		Account:     e.Account,
		Target:      e.Target,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

// Transaction is the API representation of a transaction.
type Transaction struct {
	ID uuid.UUID `json:"id" example:"d430d7c3-d14c-4712-9336-ee56965a6673"` // ID of the transaction
	TransactionEditable
	Links TransactionLinks `json:"links"`
}

func newTransaction(c *gin.Context, t *ledger.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		ID: t.ID,
		TransactionEditable: TransactionEditable{
			Kind:        t.Kind,
			Amount:      t.Amount,
			Description: t.Description,
			Category:    t.Category,
			Date:        t.Date,
			Account:     t.Account,
			Target:      t.Target,
		},
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, t.ID),
		},
	}
}

// transactionsURL returns the URL of the transaction list filtered by key=value.
func transactionsURL(base, key, value string) string {
	return fmt.Sprintf("%s/v1/transactions?%s", base, url.Values{key: {value}}.Encode())
}

type TransactionQueryFilter struct {
	Account     string      `form:"account"`                                         // Name of an account, matches transactions referencing it
	Envelope    string      `form:"envelope"`                                        // Name of an envelope, matches transactions referencing it
	Kind        ledger.Kind `form:"kind"`                                            // Kind of the transaction
	Category    string      `form:"category"`                                        // Exact category
	Description string      `form:"description"`                                     // Glob pattern for the description, e.g. "*coffee*"
	FromDate    time.Time   `form:"fromDate" time_format:"2006-01-02" time_utc:"1"`  // Transactions at and after this date
	UntilDate   time.Time   `form:"untilDate" time_format:"2006-01-02" time_utc:"1"` // Transactions before and at this date
	Offset      uint        `form:"offset"`                                          // The offset of the first transaction returned
	Limit       int         `form:"limit,default=50"`                                // Maximum number of transactions to return. -1 returns all
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // The transaction data, if creation was successful
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this transaction
}

type TransactionCreateResponse struct {
	Data  []TransactionResponse `json:"data"`                                                          // List of created transactions
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	r.Data = append(r.Data, TransactionResponse{Error: errorString(err)})
	return highestStatus(err, currentStatus)
}
