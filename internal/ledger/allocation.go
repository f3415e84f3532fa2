package ledger

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

var (
	// baseAllocation is the most a fixed target envelope receives per
	// automatic distribution before the urgency multiplier is applied.
	baseAllocation = decimal.NewFromInt(150)

	urgencyVeryHigh = decimal.NewFromFloat(1.5)
	urgencyHigh     = decimal.NewFromFloat(1.2)

	// suggestionShare is the share of the amount suggested for envelopes with
	// an upcoming deadline.
	suggestionShare = decimal.NewFromFloat(0.3)

	// Tolerance is the largest difference between a distribution and its
	// total that is still considered valid.
	Tolerance = decimal.NewFromFloat(0.01)

	cent = decimal.New(1, -2)
)

// Distribution maps envelope names to the amount they receive.
type Distribution map[string]decimal.Decimal

// Total returns the sum of all amounts.
func (d Distribution) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range d {
		total = total.Add(v)
	}
	return total
}

// distribution is a Distribution that remembers the order in which
// envelopes were added.
type distribution struct {
	amounts Distribution
	order   []string
}

func (d *distribution) add(name string, amount decimal.Decimal) {
	if _, ok := d.amounts[name]; !ok {
		d.order = append(d.order, name)
	}
	d.amounts[name] = d.amounts[name].Add(amount)
}

// urgency returns the multiplier for a deadline that is days away.
func urgency(days int) decimal.Decimal {
	switch {
	case days <= 30:
		return urgencyVeryHigh
	case days <= 90:
		return urgencyHigh
	default:
		return decimal.NewFromInt(1)
	}
}

// ComputeAutomaticDistribution splits total across the envelopes.
//
// Envelopes are served in four phases:
//  1. recurring refills, emptiest first, up to their missing refill amount
//  2. fixed targets by ascending target date, at most 150 times an urgency
//     multiplier each. Targets without a date come last
//  3. open ended envelopes share whatever is left equally
//  4. if money is still left, it is split equally across all envelopes that
//     received something in the previous phases
//
// If no envelope receives anything, the result is empty and the whole total
// stays unallocated.
func ComputeAutomaticDistribution(total decimal.Decimal, envelopes []Envelope, now time.Time) Distribution {
	result := &distribution{amounts: Distribution{}}
	remaining := total

	// Phase 1: recurring refills
	var refills []Envelope
	for _, e := range envelopes {
		if e.Kind() == KindRecurringRefill {
			refills = append(refills, e)
		}
	}

	slices.SortStableFunc(refills, func(a, b Envelope) int {
		return a.CurrentAmount.Cmp(b.CurrentAmount)
	})

	for _, e := range refills {
		needed := e.Needed()
		if !needed.IsPositive() || !remaining.IsPositive() {
			continue
		}

		allocation := decimal.Min(needed, remaining)
		result.add(e.Name, allocation)
		remaining = remaining.Sub(allocation)
	}

	// Phase 2: fixed targets
	var targets []Envelope
	for _, e := range envelopes {
		if e.Kind() == KindFixedTarget {
			targets = append(targets, e)
		}
	}

	slices.SortStableFunc(targets, func(a, b Envelope) int {
		da, db := a.deadline(), b.deadline()
		switch {
		case da == nil && db == nil:
			return 0
		case da == nil:
			return 1
		case db == nil:
			return -1
		default:
			return da.Compare(*db)
		}
	})

	for _, e := range targets {
		if !remaining.IsPositive() {
			break
		}

		needed := e.Needed()
		if needed.IsZero() {
			continue
		}

		multiplier := decimal.NewFromInt(1)
		if date := e.deadline(); date != nil {
			multiplier = urgency(daysUntil(now, *date))
		}

		allocation := decimal.Min(decimal.Min(baseAllocation, needed).Mul(multiplier), remaining)
		result.add(e.Name, allocation)
		remaining = remaining.Sub(allocation)
	}

	// Phase 3: open ended envelopes
	var open []string
	for _, e := range envelopes {
		if e.IsInfinite() {
			open = append(open, e.Name)
		}
	}

	if len(open) > 0 && remaining.IsPositive() {
		shares := EqualSplit(remaining, open)
		for _, name := range open {
			if amount, ok := shares[name]; ok {
				result.add(name, amount)
				delete(shares, name)
			}
		}
		remaining = decimal.Zero
	}

	// Phase 4: top up everything that received money
	if remaining.IsPositive() && len(result.order) > 0 {
		shares := EqualSplit(remaining, result.order)
		for _, name := range result.order {
			result.add(name, shares[name])
		}
	}

	return result.amounts
}

// EqualSplit splits total into equal shares for the named envelopes.
//
// Shares are rounded down to cents. The remaining cents are handed out one by
// one starting with the first name, and any sub-cent rest goes to the first
// name as well, so the shares always add up to total exactly.
func EqualSplit(total decimal.Decimal, names []string) Distribution {
	d := Distribution{}
	if len(names) == 0 {
		return d
	}

	// Names may repeat, each one only receives a single share
	var unique []string
	for _, n := range names {
		if _, ok := d[n]; !ok {
			d[n] = decimal.Zero
			unique = append(unique, n)
		}
	}

	count := decimal.NewFromInt(int64(len(unique)))
	share := total.Div(count).RoundDown(2)
	for _, n := range unique {
		d[n] = share
	}

	rest := total.Sub(share.Mul(count))
	for i := 0; rest.GreaterThanOrEqual(cent) && i < len(unique); i++ {
		d[unique[i]] = d[unique[i]].Add(cent)
		rest = rest.Sub(cent)
	}

	if !rest.IsZero() {
		d[unique[0]] = d[unique[0]].Add(rest)
	}

	return d
}

// Priority is the urgency of a Suggestion.
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	}
	return fmt.Sprintf("Priority(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Suggestion is a recommended amount for one envelope.
type Suggestion struct {
	Envelope string
	Amount   decimal.Decimal
	Reason   string
	Priority Priority
}

// DistributionSuggestions recommends amounts for envelopes that need money soon.
//
// Recurring refills that are not full are high priority. Fixed targets with a
// deadline in at most 60 days are high priority within 30 days, medium
// otherwise. The result is ordered by descending priority.
func DistributionSuggestions(amount decimal.Decimal, envelopes []Envelope, now time.Time) []Suggestion {
	var suggestions []Suggestion

	for _, e := range envelopes {
		if e.Kind() != KindRecurringRefill {
			continue
		}

		needed := e.Needed()
		if !needed.IsPositive() {
			continue
		}

		suggestions = append(suggestions, Suggestion{
			Envelope: e.Name,
			Amount:   decimal.Min(needed, amount),
			Reason:   fmt.Sprintf("%s missing to reach the monthly refill", needed.StringFixed(2)),
			Priority: PriorityHigh,
		})
	}

	for _, e := range envelopes {
		date := e.deadline()
		if e.Kind() != KindFixedTarget || date == nil {
			continue
		}

		days := daysUntil(now, *date)
		needed := e.Needed()
		if days > 60 || !needed.IsPositive() {
			continue
		}

		priority := PriorityMedium
		if days <= 30 {
			priority = PriorityHigh
		}

		suggestions = append(suggestions, Suggestion{
			Envelope: e.Name,
			Amount:   decimal.Min(needed, amount.Mul(suggestionShare)),
			Reason:   fmt.Sprintf("Target date in %d days, %s missing", days, needed.StringFixed(2)),
			Priority: priority,
		})
	}

	slices.SortStableFunc(suggestions, func(a, b Suggestion) int {
		return int(b.Priority) - int(a.Priority)
	})

	return suggestions
}

// Validation is the result of ValidateDistribution.
type Validation struct {
	Valid   bool
	Message string
}

// ValidateDistribution verifies that the distribution adds up to total.
func ValidateDistribution(d Distribution, total decimal.Decimal) Validation {
	diff := total.Sub(d.Total())

	if diff.Abs().LessThan(Tolerance) {
		return Validation{Valid: true, Message: "The distribution matches the total"}
	}

	if diff.IsNegative() {
		return Validation{Message: fmt.Sprintf("The distribution exceeds the total by %s", diff.Abs())}
	}

	return Validation{Message: fmt.Sprintf("%s of the total are not distributed", diff)}
}

// ComputeAutomaticDistribution runs the automatic distribution for all
// envelopes in the store.
func (s *Store) ComputeAutomaticDistribution(total decimal.Decimal) Distribution {
	return ComputeAutomaticDistribution(total, s.envelopeValues(), s.clock.Now())
}

// DistributionSuggestions returns suggestions for all envelopes in the store.
func (s *Store) DistributionSuggestions(amount decimal.Decimal) []Suggestion {
	return DistributionSuggestions(amount, s.envelopeValues(), s.clock.Now())
}

func (s *Store) envelopeValues() []Envelope {
	values := make([]Envelope, 0, len(s.envelopes))
	for _, e := range s.envelopes {
		values = append(values, *e)
	}
	return values
}

// DistributionInput describes an incoming lump sum and how to split it.
type DistributionInput struct {
	Kind         Kind // KindIncome or KindSalary
	Account      string
	Total        decimal.Decimal
	Description  string
	Category     string
	Distribution Distribution
}

// ApplyDistribution records the income for the total and one distribution
// transaction for every envelope with a positive share.
//
// If any transaction fails, all transactions recorded so far are reverted.
func (s *Store) ApplyDistribution(in DistributionInput) ([]*Transaction, error) {
	if !in.Kind.IsIncome() {
		return nil, fmt.Errorf("%w: distributed money must be income or salary, got '%s'", ErrInvalidKind, in.Kind)
	}

	if v := ValidateDistribution(in.Distribution, in.Total); !v.Valid {
		return nil, fmt.Errorf("%w: %s", ErrDistributionMismatch, v.Message)
	}

	return s.applyDistribution(in)
}

// ApplyAutomaticDistribution records the income for the total and distributes
// it with ComputeAutomaticDistribution. in.Distribution is ignored.
//
// The part of the total that no envelope receives stays in the account and is
// returned as unallocated.
func (s *Store) ApplyAutomaticDistribution(in DistributionInput) ([]*Transaction, decimal.Decimal, error) {
	if !in.Kind.IsIncome() {
		return nil, decimal.Zero, fmt.Errorf("%w: distributed money must be income or salary, got '%s'", ErrInvalidKind, in.Kind)
	}

	in.Distribution = s.ComputeAutomaticDistribution(in.Total)
	transactions, err := s.applyDistribution(in)
	if err != nil {
		return nil, decimal.Zero, err
	}

	return transactions, in.Total.Sub(in.Distribution.Total()), nil
}

// applyDistribution records the income and the distribution transactions.
func (s *Store) applyDistribution(in DistributionInput) ([]*Transaction, error) {
	for _, amount := range in.Distribution {
		if amount.IsNegative() {
			return nil, fmt.Errorf("%w: distributed amounts must not be negative", ErrInvalidAmount)
		}
	}

	// Deterministic order so that the transaction list is reproducible
	names := make([]string, 0, len(in.Distribution))
	for name := range in.Distribution {
		names = append(names, name)
	}
	slices.Sort(names)

	var recorded []*Transaction
	rollback := func() {
		for i := len(recorded) - 1; i >= 0; i-- {
			s.remove(s.transactionIndex(recorded[i].ID))
		}
	}

	t, err := s.record(TransactionInput{
		Kind:        in.Kind,
		Amount:      in.Total,
		Description: in.Description,
		Category:    in.Category,
		Account:     in.Account,
	})
	if err != nil {
		return nil, err
	}
	recorded = append(recorded, t)

	for _, name := range names {
		amount := in.Distribution[name]
		if !amount.IsPositive() {
			continue
		}

		t, err := s.record(TransactionInput{
			Kind:        KindDistribution,
			Amount:      amount,
			Description: in.Description,
			Category:    in.Category,
			Date:        recorded[0].Date,
			Account:     in.Account,
			Target:      name,
		})
		if err != nil {
			rollback()
			return nil, err
		}
		recorded = append(recorded, t)
	}

	log.Debug().Str("account", in.Account).Str("total", in.Total.String()).Int("envelopes", len(recorded)-1).Msg("ledger: distribution applied")

	s.changed()
	return recorded, nil
}
