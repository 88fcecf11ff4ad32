package server

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/loyerbxl/rentwizard/internal/difficulty"
	"github.com/loyerbxl/rentwizard/internal/session"
	"github.com/loyerbxl/rentwizard/internal/wizard"
)

// fakeLookup is a canned difficulty.Service.
type fakeLookup struct {
	env *difficulty.Envelope
	err error
}

func (f *fakeLookup) Lookup(ctx context.Context, postalCode int, streetName, streetNumber string) (*difficulty.Envelope, error) {
	return f.env, f.err
}

func successLookup(index float64) *fakeLookup {
	return &fakeLookup{env: &difficulty.Envelope{
		Success: true,
		Data:    &index,
		Code:    difficulty.CodeSuccess,
	}}
}

func newTestServer(t *testing.T, lookup difficulty.Service) *httptest.Server {
	t.Helper()
	s := newServer(&Config{Host: "127.0.0.1", Port: 0}, session.NewMemoryStore(), lookup)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

// noRedirect returns a client that surfaces redirects instead of
// following them.
func noRedirect() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func decodeState(t *testing.T, body io.Reader) wizard.State {
	t.Helper()
	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	var s wizard.State
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatalf("decoding state: %v\n%s", err, data)
	}
	return s
}

func createSession(t *testing.T, base string) wizard.State {
	t.Helper()
	resp, err := http.Post(base+"/api/session", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /api/session: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	return decodeState(t, resp.Body)
}

func dispatch(t *testing.T, base, sessionID string, envelope string) wizard.State {
	t.Helper()
	resp, err := http.Post(base+"/api/session/"+sessionID+"/actions", "application/json", bytes.NewBufferString(envelope))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("dispatch status = %d: %s", resp.StatusCode, body)
	}
	return decodeState(t, resp.Body)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, successLookup(1))

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestSessionLifecycle(t *testing.T) {
	srv := newTestServer(t, successLookup(1))

	state := createSession(t, srv.URL)
	if state.SessionID == "" {
		t.Fatal("created session has no id")
	}
	if state.CurrentStep != 1 {
		t.Errorf("CurrentStep = %d, want 1", state.CurrentStep)
	}

	resp, err := http.Get(srv.URL + "/api/session/" + state.SessionID)
	if err != nil {
		t.Fatalf("GET session: %v", err)
	}
	defer resp.Body.Close()
	got := decodeState(t, resp.Body)
	if got.SessionID != state.SessionID {
		t.Errorf("fetched SessionID = %q, want %q", got.SessionID, state.SessionID)
	}
}

func TestGetUnknownSession(t *testing.T) {
	srv := newTestServer(t, successLookup(1))

	resp, err := http.Get(srv.URL + "/api/session/no-such-session")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestDispatchUpdatesState(t *testing.T) {
	srv := newTestServer(t, successLookup(1))
	state := createSession(t, srv.URL)

	next := dispatch(t, srv.URL, state.SessionID,
		`{"type":"update-property-info","payload":{"postalCode":1000,"streetName":"Rue Haute"}}`)

	if next.PropertyInfo.PostalCode != 1000 {
		t.Errorf("PostalCode = %d, want 1000", next.PropertyInfo.PostalCode)
	}
	if next.PropertyInfo.StreetName != "Rue Haute" {
		t.Errorf("StreetName = %q", next.PropertyInfo.StreetName)
	}
	if next.LastUpdated < state.LastUpdated {
		t.Error("LastUpdated went backwards")
	}
}

func TestDispatchLegacyActionName(t *testing.T) {
	srv := newTestServer(t, successLookup(1))
	state := createSession(t, srv.URL)

	next := dispatch(t, srv.URL, state.SessionID,
		`{"type":"SET_STEP","payload":3}`)
	if next.CurrentStep != 3 {
		t.Errorf("CurrentStep = %d, want 3", next.CurrentStep)
	}
}

func TestDispatchUnknownActionIsClientError(t *testing.T) {
	srv := newTestServer(t, successLookup(1))
	state := createSession(t, srv.URL)

	resp, err := http.Post(srv.URL+"/api/session/"+state.SessionID+"/actions",
		"application/json", bytes.NewBufferString(`{"type":"EXPLODE"}`))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestStepURLResolvesOrdinal(t *testing.T) {
	srv := newTestServer(t, successLookup(1))

	resp, err := http.Get(srv.URL + "/fr/calculateur/bruxelles/step/features")
	if err != nil {
		t.Fatalf("GET step: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var got stepResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Step != 3 {
		t.Errorf("Step = %d, want 3", got.Step)
	}
	if got.Path != "/fr/calculateur/bruxelles/step/features" {
		t.Errorf("Path = %q", got.Path)
	}
}

func TestInvalidStepRedirectsToFirst(t *testing.T) {
	srv := newTestServer(t, successLookup(1))
	client := noRedirect()

	for _, key := range []string{"bogus", "undefined", "7"} {
		resp, err := client.Get(srv.URL + "/nl/calculateur/bruxelles/step/" + key)
		if err != nil {
			t.Fatalf("GET step %q: %v", key, err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusFound {
			t.Errorf("step %q: status = %d, want 302", key, resp.StatusCode)
		}
		if loc := resp.Header.Get("Location"); loc != "/nl/calculateur/bruxelles/step/property-type" {
			t.Errorf("step %q: Location = %q", key, loc)
		}
	}
}

func TestSessionParamConsumedByRedirect(t *testing.T) {
	srv := newTestServer(t, successLookup(1))
	state := createSession(t, srv.URL)
	client := noRedirect()

	resp, err := client.Get(srv.URL + "/fr/calculateur/bruxelles/step/address?session=" + state.SessionID)
	if err != nil {
		t.Fatalf("GET step: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/fr/calculateur/bruxelles/step/address" {
		t.Errorf("Location = %q, session param not stripped", loc)
	}
}

// referenceProperty dispatches the property used as the calculation
// fixture: a 120 m² one-bedroom apartment in good condition, energy
// class A, fully equipped.
func referenceProperty(t *testing.T, base, sessionID string) {
	t.Helper()
	dispatch(t, base, sessionID, `{"type":"update-property-info","payload":{
		"postalCode":1000,"streetName":"Rue de la Loi","streetNumber":"16",
		"propertyType":"apartment","size":120,"bedrooms":1,
		"propertyState":"good","energyClass":"A",
		"centralHeating":true,"thermalRegulation":true,"secondBathroom":true,
		"recreationalSpaces":true,"storageSpaces":true,"numberOfGarages":0}}`)
}

func TestCalculateSuccess(t *testing.T) {
	srv := newTestServer(t, successLookup(1.91343466063764))
	state := createSession(t, srv.URL)
	referenceProperty(t, srv.URL, state.SessionID)

	resp, err := http.Post(srv.URL+"/api/session/"+state.SessionID+"/calculate", "application/json", nil)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	defer resp.Body.Close()
	next := decodeState(t, resp.Body)

	r := next.CalculationResults
	if r.IsLoading {
		t.Error("IsLoading still set after calculation")
	}
	if r.Error != nil || r.ErrorCode != nil {
		t.Errorf("error pair set on success: %v / %v", r.Error, r.ErrorCode)
	}
	if r.DifficultyIndex == nil || *r.DifficultyIndex != 1.91343466063764 {
		t.Errorf("DifficultyIndex = %v", r.DifficultyIndex)
	}
	if r.MedianRent == nil || *r.MedianRent != 1180.90 {
		t.Errorf("MedianRent = %v, want 1180.90", r.MedianRent)
	}
	if r.MinRent == nil || *r.MinRent != 1062.81 {
		t.Errorf("MinRent = %v, want 1062.81", r.MinRent)
	}
	if r.MaxRent == nil || *r.MaxRent != 1298.99 {
		t.Errorf("MaxRent = %v, want 1298.99", r.MaxRent)
	}
}

func TestCalculateLookupFailureFoldsError(t *testing.T) {
	msg := "street not found in reference database"
	srv := newTestServer(t, &fakeLookup{env: &difficulty.Envelope{
		Success: false,
		Error:   &msg,
		Code:    difficulty.CodeNotFound,
	}})
	state := createSession(t, srv.URL)
	referenceProperty(t, srv.URL, state.SessionID)

	resp, err := http.Post(srv.URL+"/api/session/"+state.SessionID+"/calculate", "application/json", nil)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	defer resp.Body.Close()
	next := decodeState(t, resp.Body)

	r := next.CalculationResults
	if r.Error == nil || *r.Error != msg {
		t.Errorf("Error = %v, want %q", r.Error, msg)
	}
	if r.ErrorCode == nil || *r.ErrorCode != "NOT_FOUND" {
		t.Errorf("ErrorCode = %v, want NOT_FOUND", r.ErrorCode)
	}
	if r.MedianRent != nil {
		t.Errorf("MedianRent = %v, rent must not be calculated on lookup failure", *r.MedianRent)
	}
	if r.IsLoading {
		t.Error("IsLoading still set after failure")
	}
}

func TestCalculateTransportFailure(t *testing.T) {
	srv := newTestServer(t, &fakeLookup{err: context.DeadlineExceeded})
	state := createSession(t, srv.URL)
	referenceProperty(t, srv.URL, state.SessionID)

	resp, err := http.Post(srv.URL+"/api/session/"+state.SessionID+"/calculate", "application/json", nil)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	defer resp.Body.Close()
	next := decodeState(t, resp.Body)

	r := next.CalculationResults
	if r.ErrorCode == nil || *r.ErrorCode != "SYSTEM_ERROR" {
		t.Errorf("ErrorCode = %v, want SYSTEM_ERROR", r.ErrorCode)
	}
	if r.MedianRent != nil {
		t.Error("rent calculated despite unreachable lookup service")
	}
}

func TestDeleteSession(t *testing.T) {
	srv := newTestServer(t, successLookup(1))
	state := createSession(t, srv.URL)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/session/"+state.SessionID, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}

	check, err := http.Get(srv.URL + "/api/session/" + state.SessionID)
	if err != nil {
		t.Fatalf("GET after delete: %v", err)
	}
	check.Body.Close()
	if check.StatusCode != http.StatusNotFound {
		t.Errorf("status after delete = %d, want 404", check.StatusCode)
	}
}

func TestSessionSurvivesRestartViaStore(t *testing.T) {
	store := session.NewMemoryStore()
	lookup := successLookup(1)

	first := newServer(&Config{}, store, lookup)
	firstSrv := httptest.NewServer(first.Handler())
	state := createSession(t, firstSrv.URL)
	dispatch(t, firstSrv.URL, state.SessionID, `{"type":"SET_STEP","payload":4}`)

	// Flush the debounced snapshot before "restarting".
	first.reg.closeAll()
	firstSrv.Close()

	second := newServer(&Config{}, store, lookup)
	secondSrv := httptest.NewServer(second.Handler())
	defer secondSrv.Close()

	resp, err := http.Get(secondSrv.URL + "/api/session/" + state.SessionID)
	if err != nil {
		t.Fatalf("GET restored session: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	got := decodeState(t, resp.Body)
	if got.CurrentStep != 4 {
		t.Errorf("restored CurrentStep = %d, want 4", got.CurrentStep)
	}
	if got.SessionID != state.SessionID {
		t.Errorf("restored SessionID = %q", got.SessionID)
	}
}
