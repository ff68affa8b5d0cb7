package vitals

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"time"

	"github.com/etnz/vitals/date"
	"github.com/shopspring/decimal"
)

// Journal holds every record of one identity.
//
// It is the record source of the engine: scores, net worth and metrics are pure
// functions of a Journal.
type Journal struct {
	Health      []DailyHealthInput
	Psychology  []DailyPsychologyInput
	Incomes     []Income
	Expenses    []Expense
	Investments []Investment
}

// Claim is the journal entry recording that an investment was claimed.
type Claim struct {
	ID            string
	At            time.Time
	RealizedPL    Money
	RealizedPLUSD Money
	Rate          RateSnapshot
}

// EntryType identifies a journal line.
type EntryType string

const (
	EntryHealth     EntryType = "health"
	EntryPsychology EntryType = "psychology"
	EntryIncome     EntryType = "income"
	EntryExpense    EntryType = "expense"
	EntryInvestment EntryType = "investment"
	EntryClaim      EntryType = "claim"
)

// Add appends an entry to the journal. Claims are applied to their investment.
func (j *Journal) Add(entry any) error {
	switch e := entry.(type) {
	case DailyHealthInput:
		if err := e.Validate(); err != nil {
			return err
		}
		j.Health = append(j.Health, e)
	case DailyPsychologyInput:
		if err := e.Validate(); err != nil {
			return err
		}
		j.Psychology = append(j.Psychology, e)
	case Income:
		if err := e.Validate(); err != nil {
			return err
		}
		j.Incomes = append(j.Incomes, e)
	case Expense:
		if err := e.Validate(); err != nil {
			return err
		}
		j.Expenses = append(j.Expenses, e)
	case Investment:
		if err := e.Validate(); err != nil {
			return err
		}
		if _, found := j.investment(e.ID); found {
			return fmt.Errorf("investment %q is already defined", e.ID)
		}
		j.Investments = append(j.Investments, e)
	case Claim:
		i, found := j.investment(e.ID)
		if !found {
			return fmt.Errorf("cannot claim unknown investment %q", e.ID)
		}
		inv := j.Investments[i]
		if inv.Status == Claimed {
			return fmt.Errorf("%w: %s on %v", ErrAlreadyClaimed, inv.ID, inv.ClaimDate())
		}
		if err := inv.checkClaim(e.At, e.RealizedPL.value); err != nil {
			return err
		}
		inv.Status = Claimed
		inv.ClaimedAt = e.At
		inv.RealizedPL = e.RealizedPL
		inv.RealizedPLUSD = e.RealizedPLUSD
		inv.ClaimRate = e.Rate
		j.Investments[i] = inv
	default:
		return fmt.Errorf("unsupported journal entry %T", entry)
	}
	return nil
}

func (j *Journal) investment(id string) (int, bool) {
	i := slices.IndexFunc(j.Investments, func(inv Investment) bool { return inv.ID == id })
	return i, i >= 0
}

// Investment returns the investment with that id.
func (j *Journal) Investment(id string) (Investment, bool) {
	if i, found := j.investment(id); found {
		return j.Investments[i], true
	}
	return Investment{}, false
}

// Window returns the records of the journal dated inside r.
//
// Investments are kept when either their creation or their claim is inside r.
func (j *Journal) Window(r date.Range) *Journal {
	w := new(Journal)
	for _, h := range j.Health {
		if r.Contains(h.On) {
			w.Health = append(w.Health, h)
		}
	}
	for _, p := range j.Psychology {
		if r.Contains(p.On) {
			w.Psychology = append(w.Psychology, p)
		}
	}
	for _, i := range j.Incomes {
		if r.Contains(i.On) {
			w.Incomes = append(w.Incomes, i)
		}
	}
	for _, e := range j.Expenses {
		if r.Contains(e.On) {
			w.Expenses = append(w.Expenses, e)
		}
	}
	for _, inv := range j.Investments {
		if r.Contains(inv.On) || (inv.IsClaimed() && r.Contains(inv.ClaimDate())) {
			w.Investments = append(w.Investments, inv)
		}
	}
	return w
}

// Upto returns the journal as it was at the end of day on: later records are dropped and
// investments claimed after on are active again.
func (j *Journal) Upto(on date.Date) *Journal {
	u := j.Window(date.Upto(on))
	u.Investments = u.Investments[:0:0]
	for _, inv := range j.Investments {
		if inv.On.After(on) {
			continue
		}
		if inv.IsClaimed() && inv.ClaimDate().After(on) {
			inv.Status, inv.ClaimedAt = Active, time.Time{}
			inv.RealizedPL, inv.RealizedPLUSD, inv.ClaimRate = Money{}, Money{}, RateSnapshot{}
		}
		u.Investments = append(u.Investments, inv)
	}
	return u
}

// journal lines use a flat structure, with explicit legacy fallbacks.
type jline struct {
	Type EntryType `json:"type"`
	ID   string    `json:"id,omitempty"`
	On   date.Date `json:"date"`

	// health
	SleepHours    *float64           `json:"sleep_hours,omitempty"`
	Activity      ActivityLevel      `json:"activity_level,omitempty"`
	Meal          MealQuality        `json:"meal_quality,omitempty"`
	ProcessedFood ProcessedFoodLevel `json:"processed_food_level,omitempty"`
	Water         WaterIntake        `json:"water_intake,omitempty"`
	Illness       IllnessStatus      `json:"illness_status,omitempty"`

	// psychology
	Stress     StressLevel     `json:"stress_level,omitempty"`
	Motivation MotivationLevel `json:"motivation_level,omitempty"`
	Fatigue    FatigueLevel    `json:"fatigue_level,omitempty"`

	// money
	AmountTRY   decimal.NullDecimal `json:"amount_try"`
	Amount      decimal.NullDecimal `json:"amount"`
	AmountUSD   decimal.NullDecimal `json:"amount_usd"`
	InvestedTRY decimal.NullDecimal `json:"invested_try"`
	InvestedUSD decimal.NullDecimal `json:"invested_usd"`
	Rate        decimal.Decimal     `json:"rate"`
	RateOn      *date.Date          `json:"rate_date"`
	Category    string              `json:"category"`
	Note        string              `json:"note"`
	Asset       string              `json:"asset"`

	// claims
	Status        InvestmentStatus    `json:"status"`
	ClaimedAt     time.Time           `json:"claimed_at"`
	RealizedPLTRY decimal.NullDecimal `json:"realized_pl_try"`
	ProfitLossTRY decimal.NullDecimal `json:"profit_loss_try"`
	RealizedPLUSD decimal.NullDecimal `json:"realized_pl_usd"`
	ClaimRate     decimal.Decimal     `json:"claim_rate"`
	ClaimRateOn   *date.Date          `json:"claim_rate_date"`
}

// first returns the first valid value of a fallback chain.
func first(chain ...decimal.NullDecimal) (decimal.Decimal, bool) {
	for _, d := range chain {
		if d.Valid {
			return d.Decimal, true
		}
	}
	return decimal.Zero, false
}

func (l jline) snapshot(rate decimal.Decimal, on *date.Date) RateSnapshot {
	s := RateSnapshot{Rate: rate, On: l.On}
	if on != nil {
		s.On = *on
	}
	return s
}

// secondary returns the stored secondary amount, or derives it from the record's own
// snapshot rate when the line predates the secondary currency.
func secondary(stored decimal.NullDecimal, primary decimal.Decimal, s RateSnapshot) Money {
	if stored.Valid {
		return USD(stored.Decimal)
	}
	return s.ToSecondary(TRY(primary))
}

// entry converts the line into a journal entry.
//
// The legacy fallback chains are fixed:
//
//	income, expense amount:  amount_try → amount
//	investment principal:    invested_try → amount_try → amount
//	realized profit/loss:    realized_pl_try → profit_loss_try
func (l jline) entry() ([]any, error) {
	switch l.Type {
	case EntryHealth:
		return []any{DailyHealthInput{On: l.On, SleepHours: l.SleepHours, Activity: l.Activity, Meal: l.Meal, ProcessedFood: l.ProcessedFood, Water: l.Water, Illness: l.Illness}}, nil
	case EntryPsychology:
		return []any{DailyPsychologyInput{On: l.On, Stress: l.Stress, Motivation: l.Motivation, Fatigue: l.Fatigue}}, nil
	case EntryIncome, EntryExpense:
		amount, ok := first(l.AmountTRY, l.Amount)
		if !ok {
			return nil, fmt.Errorf("%s %q has no amount_try nor amount", l.Type, l.ID)
		}
		snap := l.snapshot(l.Rate, l.RateOn)
		usd := secondary(l.AmountUSD, amount, snap)
		if l.Type == EntryIncome {
			return []any{Income{ID: l.ID, On: l.On, Amount: TRY(amount), AmountUSD: usd, Rate: snap, Category: l.Category, Note: l.Note}}, nil
		}
		return []any{Expense{ID: l.ID, On: l.On, Amount: TRY(amount), AmountUSD: usd, Rate: snap, Category: l.Category, Note: l.Note}}, nil
	case EntryInvestment:
		amount, ok := first(l.InvestedTRY, l.AmountTRY, l.Amount)
		if !ok {
			return nil, fmt.Errorf("investment %q has no invested_try, amount_try nor amount", l.ID)
		}
		snap := l.snapshot(l.Rate, l.RateOn)
		inv := Investment{ID: l.ID, On: l.On, Asset: l.Asset, Invested: TRY(amount), InvestedUSD: secondary(l.InvestedUSD, amount, snap), Rate: snap, Status: Active}
		entries := []any{inv}
		switch l.Status {
		case "", Active:
		case Claimed:
			// legacy lines carry the claim inline.
			c, err := l.claim()
			if err != nil {
				return nil, err
			}
			entries = append(entries, c)
		default:
			return nil, invalid("status", string(l.Status), "want active|claimed")
		}
		return entries, nil
	case EntryClaim:
		c, err := l.claim()
		if err != nil {
			return nil, err
		}
		return []any{c}, nil
	default:
		return nil, fmt.Errorf("unknown entry type %q", l.Type)
	}
}

func (l jline) claim() (Claim, error) {
	if l.ClaimedAt.IsZero() {
		return Claim{}, fmt.Errorf("claim of %q has no claimed_at", l.ID)
	}
	pl, _ := first(l.RealizedPLTRY, l.ProfitLossTRY)
	rate, on := l.ClaimRate, l.ClaimRateOn
	if l.Type == EntryClaim {
		rate, on = l.Rate, l.RateOn
	}
	snap := RateSnapshot{Rate: rate, On: date.FromTime(l.ClaimedAt)}
	if on != nil {
		snap.On = *on
	}
	return Claim{ID: l.ID, At: l.ClaimedAt, RealizedPL: TRY(pl), RealizedPLUSD: secondary(l.RealizedPLUSD, pl, snap), Rate: snap}, nil
}

// DecodeJournal decodes a JSONL stream of journal entries.
func DecodeJournal(r io.Reader) (*Journal, error) {
	j := new(Journal)
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}
		var l jline
		if err := json.Unmarshal(line, &l); err != nil {
			return nil, fmt.Errorf("line %d: could not decode %q: %w", n, string(line), err)
		}
		entries, err := l.entry()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		for _, e := range entries {
			if err := j.Add(e); err != nil {
				return nil, fmt.Errorf("line %d: %w", n, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return j, nil
}

// EncodeEntry writes a single journal entry as a JSON line.
func EncodeEntry(w io.Writer, entry any) error {
	var o entryWriter
	switch e := entry.(type) {
	case DailyHealthInput:
		o.Append("type", EntryHealth).Append("date", e.On)
		o.Optional("sleep_hours", e.SleepHours)
		o.Optional("activity_level", e.Activity)
		o.Optional("meal_quality", e.Meal)
		o.Optional("processed_food_level", e.ProcessedFood)
		o.Optional("water_intake", e.Water)
		o.Optional("illness_status", e.Illness)
	case DailyPsychologyInput:
		o.Append("type", EntryPsychology).Append("date", e.On)
		o.Optional("stress_level", e.Stress)
		o.Optional("motivation_level", e.Motivation)
		o.Optional("fatigue_level", e.Fatigue)
	case Income:
		encodeFlow(&o, EntryIncome, e.ID, e.On, e.Amount, e.AmountUSD, e.Rate, e.Category, e.Note)
	case Expense:
		encodeFlow(&o, EntryExpense, e.ID, e.On, e.Amount, e.AmountUSD, e.Rate, e.Category, e.Note)
	case Investment:
		o.Append("type", EntryInvestment).Append("id", e.ID).Append("date", e.On)
		o.Optional("asset", e.Asset)
		o.Append("invested_try", e.Invested.value).Append("invested_usd", e.InvestedUSD.value)
		o.Append("rate", e.Rate.Rate).Append("rate_date", e.Rate.On)
		if err := writeLine(w, &o); err != nil {
			return err
		}
		if !e.IsClaimed() {
			return nil
		}
		return EncodeEntry(w, Claim{ID: e.ID, At: e.ClaimedAt, RealizedPL: e.RealizedPL, RealizedPLUSD: e.RealizedPLUSD, Rate: e.ClaimRate})
	case Claim:
		o.Append("type", EntryClaim).Append("id", e.ID).Append("date", date.FromTime(e.At))
		o.Append("claimed_at", e.At)
		o.Append("realized_pl_try", e.RealizedPL.value).Append("realized_pl_usd", e.RealizedPLUSD.value)
		o.Append("rate", e.Rate.Rate).Append("rate_date", e.Rate.On)
	default:
		return fmt.Errorf("unsupported journal entry %T", entry)
	}
	return writeLine(w, &o)
}

func encodeFlow(o *entryWriter, t EntryType, id string, on date.Date, amount, usd Money, rate RateSnapshot, category, note string) {
	o.Append("type", t).Optional("id", id).Append("date", on)
	o.Append("amount_try", amount.value).Append("amount_usd", usd.value)
	o.Append("rate", rate.Rate).Append("rate_date", rate.On)
	o.Optional("category", category).Optional("note", note)
}

func writeLine(w io.Writer, o *entryWriter) error {
	line, err := o.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", line)
	return err
}

// EncodeJournal writes every entry of the journal, one per line.
func EncodeJournal(w io.Writer, j *Journal) error {
	var errs error
	for _, h := range j.Health {
		errs = errors.Join(errs, EncodeEntry(w, h))
	}
	for _, p := range j.Psychology {
		errs = errors.Join(errs, EncodeEntry(w, p))
	}
	for _, i := range j.Incomes {
		errs = errors.Join(errs, EncodeEntry(w, i))
	}
	for _, e := range j.Expenses {
		errs = errors.Join(errs, EncodeEntry(w, e))
	}
	for _, inv := range j.Investments {
		errs = errors.Join(errs, EncodeEntry(w, inv))
	}
	return errs
}

var identityPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// JournalPath returns the file of an identity's journal in dir.
func JournalPath(dir, identity string) (string, error) {
	if !identityPattern.MatchString(identity) {
		return "", invalid("identity", identity, "want letters, digits, '.', '_' or '-'")
	}
	return filepath.Join(dir, identity+".jsonl"), nil
}

// LoadJournal reads the journal of identity from dir.
//
// An identity with no journal yet has an empty journal, not an error.
func LoadJournal(dir, identity string) (*Journal, error) {
	path, err := JournalPath(dir, identity)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return new(Journal), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	j, err := DecodeJournal(f)
	if err != nil {
		return nil, fmt.Errorf("journal %q: %w", path, err)
	}
	return j, nil
}

// AppendEntry appends a single entry to the journal of identity in dir.
//
// The journal is decoded first, so that an invalid entry (a second claim for instance)
// is rejected before being written.
func AppendEntry(dir, identity string, entry any) error {
	j, err := LoadJournal(dir, identity)
	if err != nil {
		return err
	}
	if err := j.Add(entry); err != nil {
		return err
	}
	path, _ := JournalPath(dir, identity)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeEntry(f, entry)
}
