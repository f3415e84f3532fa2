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

type AccountEditable struct {
	Name string `json:"name" example:"Checking"` // Name of the account. Must be unique, closed accounts included
}

type AccountCreate struct {
	AccountEditable
	OpeningBalance decimal.Decimal `json:"openingBalance" example:"1500.00"` // Balance the account starts with. Recorded as an income or expense transaction
}

type AccountClose struct {
	TransferTo string `json:"transferTo" example:"Savings"` // Name of the open account that receives the remaining balance
}

type AccountLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`          // The account itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?account=Checking"`                  // Transactions referencing this account
	Close        string `json:"close" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2/close"`   // Endpoint to close the account
	Reopen       string `json:"reopen" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2/reopen"` // Endpoint to reopen the account
}

// Account is the API representation of an account.
type Account struct {
	ID        uuid.UUID       `json:"id" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // ID of the account
	CreatedAt time.Time       `json:"createdAt" example:"2022-04-02T19:28:44.491514Z"`   // Time the account was created
	Name      string          `json:"name" example:"Checking"`                           // Name of the account
	Balance   decimal.Decimal `json:"balance" example:"1281.13"`                         // Current balance
	Closed    bool            `json:"closed" example:"false"`                            // Closed accounts do not accept transactions
	Links     AccountLinks    `json:"links"`
}

func newAccount(c *gin.Context, a *ledger.Account) Account {
	url := c.GetString(string(models.DBContextURL))
	self := fmt.Sprintf("%s/v1/accounts/%s", url, a.ID)

	return Account{
		ID:        a.ID,
		CreatedAt: a.CreatedAt,
		Name:      a.Name,
		Balance:   a.Balance,
		Closed:    a.Closed,
		Links: AccountLinks{
			Self:         self,
			Transactions: transactionsURL(url, "account", a.Name),
			Close:        self + "/close",
			Reopen:       self + "/reopen",
		},
	}
}

type AccountListResponse struct {
	Data  []Account `json:"data"`                                                          // List of accounts
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AccountResponse struct {
	Data  *Account `json:"data"`                                                          // Data for the account
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this account
}

type AccountCreateResponse struct {
	Data  []AccountResponse `json:"data"`                                                          // List of created accounts
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *AccountCreateResponse) appendError(err error, currentStatus int) int {
	r.Data = append(r.Data, AccountResponse{Error: errorString(err)})
	return highestStatus(err, currentStatus)
}
