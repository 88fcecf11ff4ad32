package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/loyerbxl/rentwizard/internal/difficulty"
	"github.com/loyerbxl/rentwizard/internal/grid"
	"github.com/loyerbxl/rentwizard/internal/logging"
	"github.com/loyerbxl/rentwizard/internal/steps"
	"github.com/loyerbxl/rentwizard/internal/wizard"
)

// errorBody is the JSON error shape every failing endpoint returns.
type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = w.Write(data)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// httpLocation adapts the navigator's location to HTTP redirects. A
// Replace issues a 302 so the invalid URL never settles in the client.
type httpLocation struct {
	w          http.ResponseWriter
	r          *http.Request
	redirected bool
}

func (l *httpLocation) Replace(path string) {
	l.redirected = true
	http.Redirect(l.w, l.r, path, http.StatusFound)
}

func (l *httpLocation) Push(path string) {
	l.redirected = true
	http.Redirect(l.w, l.r, path, http.StatusSeeOther)
}

// stepResponse describes a resolved wizard step.
type stepResponse struct {
	Locale  string `json:"locale"`
	StepKey string `json:"stepKey"`
	Step    int    `json:"step"`
	Path    string `json:"path"`
}

// handleStep serves the step URL contract. The URL is authoritative:
// an unknown step key redirects to the first step, and a ?session=
// query parameter is consumed exactly once - the session is rehydrated
// and the client is redirected to the same URL without it.
func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	locale := chi.URLParam(r, "locale")
	stepKey := chi.URLParam(r, "stepKey")

	if sid := r.URL.Query().Get("session"); sid != "" {
		// Rehydrate if possible; a dead session id degrades to a fresh
		// visit rather than an error page.
		s.reg.lookup(sid, time.Now())

		q := r.URL.Query()
		q.Del("session")
		target := r.URL.Path
		if enc := q.Encode(); enc != "" {
			target += "?" + enc
		}
		http.Redirect(w, r, target, http.StatusFound)
		return
	}

	loc := &httpLocation{w: w, r: r}
	nav := steps.NewNavigator(locale, loc)

	action, ok := nav.Sync(stepKey, 0)
	if loc.redirected {
		return
	}
	if !ok {
		// Unreachable with a zero current step, but keep the handler
		// honest about the navigator contract.
		writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown step"})
		return
	}

	set := action.(wizard.SetCurrentStep)
	writeJSON(w, http.StatusOK, stepResponse{
		Locale:  locale,
		StepKey: stepKey,
		Step:    set.Step,
		Path:    steps.PathFor(locale, stepKey),
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	entry := s.reg.create(time.Now())
	writeJSON(w, http.StatusCreated, entry.snapshot())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	entry := s.reg.lookup(chi.URLParam(r, "sessionID"), time.Now())
	if entry == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown session"})
		return
	}
	writeJSON(w, http.StatusOK, entry.snapshot())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s.reg.remove(chi.URLParam(r, "sessionID"))
	w.WriteHeader(http.StatusNoContent)
}

// handleDispatch applies one wire action to a session and returns the
// resulting state. Unknown actions are a client error here, even though
// the reducer itself ignores them: a typo in an action name should be
// visible during development, not silently dropped.
func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	entry := s.reg.lookup(chi.URLParam(r, "sessionID"), time.Now())
	if entry == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown session"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "unreadable body"})
		return
	}

	action, ok := wizard.DecodeAction(body)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "unrecognized action"})
		return
	}

	next := entry.apply(action, time.Now())
	logging.LogTransition(next.SessionID, action.Name(), next.CurrentStep)
	writeJSON(w, http.StatusOK, next)
}

// handleCalculate runs the difficulty-index lookup for the session's
// address and, when it succeeds, the reference rent calculation. A
// failed lookup folds its error pair into the state and the rent is
// not calculated.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	entry := s.reg.lookup(chi.URLParam(r, "sessionID"), time.Now())
	if entry == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown session"})
		return
	}

	loading := true
	entry.apply(wizard.UpdateCalculationResults{Patch: wizard.CalculationResultsPatch{
		IsLoading:  &loading,
		ClearError: true,
	}}, time.Now())

	p := entry.snapshot().PropertyInfo

	ctx := r.Context()
	if s.config.LookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.LookupTimeout)
		defer cancel()
	}

	env, err := s.lookup.Lookup(ctx, p.PostalCode, p.StreetName, p.StreetNumber)
	if err != nil {
		next := s.failCalculation(entry, "lookup service unreachable", difficulty.CodeSystemError)
		writeJSON(w, http.StatusOK, next)
		return
	}
	if !env.Success || env.Data == nil {
		msg := "difficulty index unavailable"
		if env.Error != nil {
			msg = *env.Error
		}
		next := s.failCalculation(entry, msg, env.Code)
		writeJSON(w, http.StatusOK, next)
		return
	}

	// Fold the index into the state first so the calculation reads it
	// the same way a recalculation would.
	index := *env.Data
	state := entry.apply(wizard.UpdateCalculationResults{Patch: wizard.CalculationResultsPatch{
		DifficultyIndex: &index,
	}}, time.Now())

	result := grid.Calculate(grid.InputFromState(state))

	done := false
	next := entry.apply(wizard.UpdateCalculationResults{Patch: wizard.CalculationResultsPatch{
		MedianRent: &result.MedianRent,
		MinRent:    &result.MinRent,
		MaxRent:    &result.MaxRent,
		IsLoading:  &done,
		ClearError: true,
	}}, time.Now())

	writeJSON(w, http.StatusOK, next)
}

// failCalculation stamps the error pair onto the session and clears the
// loading flag.
func (s *Server) failCalculation(entry *sessionEntry, msg string, code difficulty.Code) wizard.State {
	done := false
	errMsg := msg
	errCode := string(code)
	return entry.apply(wizard.UpdateCalculationResults{Patch: wizard.CalculationResultsPatch{
		IsLoading: &done,
		Error:     &errMsg,
		ErrorCode: &errCode,
	}}, time.Now())
}
