package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/etnz/vitals"
	"github.com/etnz/vitals/date"
	"github.com/go-chi/chi/v5"
)

type healthRequest struct {
	Date           string   `json:"date"`
	SleepHours     *float64 `json:"sleepHours" validate:"omitempty,gte=0,lte=24"`
	Activity       int      `json:"activityLevel" validate:"omitempty,min=1,max=5"`
	Meal           string   `json:"mealQuality" validate:"omitempty,oneof=poor normal good"`
	ProcessedFood  string   `json:"processedFoodLevel" validate:"omitempty,oneof=high medium low"`
	Water          string   `json:"waterIntake" validate:"omitempty,oneof=low adequate good"`
	Illness        string   `json:"illnessStatus" validate:"omitempty,oneof=none mild severe"`
	RecentActivity []int    `json:"recentActivityHistory" validate:"omitempty,dive,min=1,max=5"`
}

func (req healthRequest) input() (vitals.DailyHealthInput, error) {
	on, err := parseDate(req.Date)
	if err != nil {
		return vitals.DailyHealthInput{}, err
	}
	in := vitals.DailyHealthInput{
		On:            on,
		SleepHours:    req.SleepHours,
		Activity:      vitals.ActivityLevel(req.Activity),
		Meal:          vitals.MealQuality(req.Meal),
		ProcessedFood: vitals.ProcessedFoodLevel(req.ProcessedFood),
		Water:         vitals.WaterIntake(req.Water),
		Illness:       vitals.IllnessStatus(req.Illness),
	}
	for _, a := range req.RecentActivity {
		in.RecentActivity = append(in.RecentActivity, vitals.ActivityLevel(a))
	}
	return in, nil
}

type mentalRequest struct {
	Date       string `json:"date"`
	Stress     string `json:"stressLevel" validate:"omitempty,oneof=calm mild high"`
	Motivation string `json:"motivationLevel" validate:"omitempty,oneof=high medium low"`
	Fatigue    string `json:"fatigueLevel" validate:"omitempty,oneof=fresh tired exhausted"`
}

// HealthScoreResponse is the body of POST /v1/scores/health.
type HealthScoreResponse struct {
	Score     int                         `json:"score"`
	Display   string                      `json:"display"`
	Breakdown vitals.HealthScoreBreakdown `json:"breakdown"`
}

// MentalScoreResponse is the body of POST /v1/scores/mental. Score is nil for an incomplete day.
type MentalScoreResponse struct {
	Score     *int                         `json:"score"`
	Display   string                       `json:"display,omitempty"`
	Complete  bool                         `json:"complete"`
	Breakdown *vitals.MentalScoreBreakdown `json:"breakdown,omitempty"`
}

// parseDate parses an optional date, the zero date when empty.
func parseDate(s string) (date.Date, error) {
	if s == "" {
		return date.Date{}, nil
	}
	on, err := date.Parse(s)
	if err != nil {
		return date.Date{}, &vitals.InputError{Field: "date", Value: s, Reason: "want YYYY-MM-DD"}
	}
	return on, nil
}

// decode reads and validates a JSON body, it writes the error response and returns false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, errBadRequest)
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		writeError(w, invalidInput(err))
		return false
	}
	return true
}

func (s *Server) handleHealthScore(w http.ResponseWriter, r *http.Request) {
	var req healthRequest
	if !s.decode(w, r, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		writeError(w, invalidInput(err))
		return
	}
	b, err := s.cfg.Scheme.HealthScore(in)
	if err != nil {
		writeError(w, invalidInput(err))
		return
	}
	writeJSON(w, http.StatusOK, HealthScoreResponse{Score: b.FinalScore, Display: vitals.FormatScore(b.FinalScore), Breakdown: b})
}

func (s *Server) handleMentalScore(w http.ResponseWriter, r *http.Request) {
	var req mentalRequest
	if !s.decode(w, r, &req) {
		return
	}
	on, err := parseDate(req.Date)
	if err != nil {
		writeError(w, invalidInput(err))
		return
	}
	b, ok, err := s.cfg.Scheme.MentalScore(vitals.DailyPsychologyInput{
		On:         on,
		Stress:     vitals.StressLevel(req.Stress),
		Motivation: vitals.MotivationLevel(req.Motivation),
		Fatigue:    vitals.FatigueLevel(req.Fatigue),
	})
	if err != nil {
		writeError(w, invalidInput(err))
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, MentalScoreResponse{})
		return
	}
	writeJSON(w, http.StatusOK, MentalScoreResponse{Score: &b.FinalScore, Display: vitals.FormatScore(b.FinalScore), Complete: true, Breakdown: &b})
}

func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.Rates.Rate(r.Context()))
}

// journal loads the journal of the identity in the path, it writes the error response and returns nil on failure.
func (s *Server) journal(w http.ResponseWriter, r *http.Request) *vitals.Journal {
	identity := chi.URLParam(r, "identity")
	j, err := vitals.LoadJournal(s.cfg.DataDir, identity)
	switch {
	case errors.Is(err, vitals.ErrInvalidInput):
		writeError(w, invalidInput(err))
		return nil
	case err != nil:
		s.log.Error().Err(err).Str("identity", identity).Msg("Failed to load journal")
		writeError(w, errInternal)
		return nil
	}
	return j
}

func (s *Server) handleNetWorth(w http.ResponseWriter, r *http.Request) {
	j := s.journal(w, r)
	if j == nil {
		return
	}
	writeJSON(w, http.StatusOK, j.NetWorth())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	on, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, invalidInput(err))
		return
	}
	if on.IsZero() {
		on = s.cfg.Today()
	}
	j := s.journal(w, r)
	if j == nil {
		return
	}
	d, err := s.cfg.Scheme.BuildDashboard(chi.URLParam(r, "identity"), j, on)
	if err != nil {
		// The journal holds a record the scheme rejects.
		writeError(w, invalidInput(err))
		return
	}
	writeJSON(w, http.StatusOK, d)
}
