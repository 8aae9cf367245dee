package client

import (
	"net/http"
	"reflect"
	"testing"
)

func unit(id, location string) VehicleUnit {
	return VehicleUnit{ID: id, VehicleModelID: "m-1", Location: location, Status: "available"}
}

func TestDeriveLocations(t *testing.T) {
	tests := []struct {
		name  string
		units []VehicleUnit
		want  []string
	}{
		{
			name:  "preserves first-seen order and casing",
			units: []VehicleUnit{unit("v1", "Hà Nội"), unit("v2", "Đà Nẵng"), unit("v3", "hà nội")},
			want:  []string{"Hà Nội", "Đà Nẵng"},
		},
		{
			name:  "drops blank locations",
			units: []VehicleUnit{unit("v1", "  "), unit("v2", "Huế"), unit("v3", "")},
			want:  []string{"Huế"},
		},
		{
			name:  "empty input",
			units: nil,
			want:  []string{},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := DeriveLocations(test.units)
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("DeriveLocations() = %v, want %v", got, test.want)
			}
		})
	}
}

// Requirement: after every data change the selected location is a member of
// the available set, or empty when the set is empty.
func TestResolveLocation(t *testing.T) {
	available := []string{"Hà Nội", "Đà Nẵng"}
	tests := []struct {
		name      string
		current   string
		available []string
		want      string
	}{
		{"kept when still offered", "Đà Nẵng", available, "Đà Nẵng"},
		{"kept case-insensitively", " đà nẵng ", available, "Đà Nẵng"},
		{"falls back to first", "Huế", available, "Hà Nội"},
		{"empty selection picks first", "", available, "Hà Nội"},
		{"no locations clears", "Hà Nội", nil, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ResolveLocation(test.current, test.available); got != test.want {
				t.Errorf("ResolveLocation(%q) = %q, want %q", test.current, got, test.want)
			}
		})
	}
}

func TestFilterUnits(t *testing.T) {
	units := []VehicleUnit{unit("v1", "Hà Nội"), unit("v2", "Đà Nẵng"), unit("v3", "Hà Nội")}

	got := FilterUnits(units, "hà nội")
	if len(got) != 2 || got[0].ID != "v1" || got[1].ID != "v3" {
		t.Errorf("FilterUnits() = %v", got)
	}
	if got := FilterUnits(units, ""); len(got) != 3 {
		t.Errorf("FilterUnits(no selection) = %v, want all units", got)
	}
}

// Requirement: the selected unit is always a member of the filtered set;
// preference order is current selection, then the hand-off hint, then the
// first offered unit.
func TestResolveUnit(t *testing.T) {
	filtered := []VehicleUnit{unit("v1", "Hà Nội"), unit("v2", "Hà Nội")}
	tests := []struct {
		name     string
		current  string
		hint     string
		filtered []VehicleUnit
		want     string
	}{
		{"current kept when offered", "v2", "v1", filtered, "v2"},
		{"hint used when current gone", "v9", "v2", filtered, "v2"},
		{"first unit when neither offered", "v9", "v8", filtered, "v1"},
		{"empty set clears", "v1", "v1", nil, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ResolveUnit(test.current, test.hint, test.filtered); got != test.want {
				t.Errorf("ResolveUnit(%q, %q) = %q, want %q", test.current, test.hint, got, test.want)
			}
		})
	}
}

// Requirement: whole-day count with a non-positive or unparsable period
// counting as zero.
func TestCountDays(t *testing.T) {
	tests := []struct {
		start string
		end   string
		want  int
	}{
		{"2024-02-10", "2024-02-13", 3},
		{"2024-02-10", "2024-02-11", 1},
		{"2024-02-10", "2024-02-10", 0},
		{"2024-02-13", "2024-02-10", 0},
		{"not-a-date", "2024-02-13", 0},
		{"2024-02-10", "", 0},
	}
	for _, test := range tests {
		if got := CountDays(test.start, test.end); got != test.want {
			t.Errorf("CountDays(%q, %q) = %d, want %d", test.start, test.end, got, test.want)
		}
	}
}

func newTestCheckout(doer *fakeDoer, params CheckoutParams, authenticated bool) (*CheckoutFlow, *MemoryTransientStore) {
	api := newTestClient(doer)
	session := NewSessionStore(api)
	if authenticated {
		session.set(Session{UserID: "u-1", Role: "USER", IsAuthenticated: true})
	} else {
		session.set(Session{})
	}
	store := NewMemoryTransientStore()
	return NewCheckoutFlow(api, session, store, params), store
}

func scriptCheckoutData(doer *fakeDoer, units []VehicleUnit) {
	doer.script("GET", "/api/catalog/models/m-1", 200, successEnvelope(map[string]any{
		"model": VehicleModel{ID: "m-1", Name: "City Hatch", PricePerDay: 40},
	}))
	doer.script("GET", "/api/catalog/availability", 200, successEnvelope(map[string]any{
		"units": units,
	}))
}

// Requirement: a location hint naming a branch with no available units
// falls back to a branch that has them, and a unit is preselected there.
func TestCheckoutFlow_LocationHintFallback(t *testing.T) {
	doer := newFakeDoer()
	scriptCheckoutData(doer, []VehicleUnit{unit("v1", "Hà Nội"), unit("v2", "Hà Nội")})
	flow, _ := newTestCheckout(doer, CheckoutParams{
		VehicleModelID: "m-1",
		StartDate:      "2024-02-10",
		EndDate:        "2024-02-13",
		LocationHint:   "Đà Nẵng",
	}, true)

	if err := flow.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	state := flow.State()
	if state.SelectedLocation != "Hà Nội" {
		t.Errorf("SelectedLocation = %q, want fallback to %q", state.SelectedLocation, "Hà Nội")
	}
	if state.SelectedUnitID != "v1" {
		t.Errorf("SelectedUnitID = %q, want %q", state.SelectedUnitID, "v1")
	}
	if state.TotalDays != 3 || state.TotalPrice != 120 {
		t.Errorf("TotalDays = %d, TotalPrice = %v, want 3 days at 40/day", state.TotalDays, state.TotalPrice)
	}
}

func TestCheckoutFlow_SelectLocationReconverges(t *testing.T) {
	doer := newFakeDoer()
	scriptCheckoutData(doer, []VehicleUnit{unit("v1", "Hà Nội"), unit("v2", "Đà Nẵng")})
	flow, _ := newTestCheckout(doer, CheckoutParams{
		VehicleModelID: "m-1",
		StartDate:      "2024-02-10",
		EndDate:        "2024-02-12",
	}, true)
	if err := flow.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	flow.SelectLocation("Đà Nẵng")
	state := flow.State()
	if state.SelectedLocation != "Đà Nẵng" {
		t.Errorf("SelectedLocation = %q", state.SelectedLocation)
	}
	if state.SelectedUnitID != "v2" {
		t.Errorf("SelectedUnitID = %q, want the unit at the new branch", state.SelectedUnitID)
	}
}

func TestCheckoutFlow_SetDatesClearsOnEmptyPeriod(t *testing.T) {
	doer := newFakeDoer()
	scriptCheckoutData(doer, []VehicleUnit{unit("v1", "Hà Nội")})
	flow, _ := newTestCheckout(doer, CheckoutParams{
		VehicleModelID: "m-1",
		StartDate:      "2024-02-10",
		EndDate:        "2024-02-12",
	}, true)
	if err := flow.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := flow.SetDates("2024-02-12", "2024-02-10"); err != nil {
		t.Fatalf("SetDates() error = %v", err)
	}
	state := flow.State()
	if state.SelectedUnitID != "" || len(state.FilteredUnits) != 0 {
		t.Errorf("state after inverted dates = %+v, want no offered units", state)
	}
	if state.TotalDays != 0 {
		t.Errorf("TotalDays = %d, want 0", state.TotalDays)
	}
}

// Requirement: an anonymous submit never reaches the network; it remembers
// the checkout page and redirects to login.
func TestCheckoutFlow_ConfirmRequiresAuth(t *testing.T) {
	doer := newFakeDoer()
	scriptCheckoutData(doer, []VehicleUnit{unit("v1", "Hà Nội")})
	flow, store := newTestCheckout(doer, CheckoutParams{
		VehicleModelID: "m-1",
		StartDate:      "2024-02-10",
		EndDate:        "2024-02-12",
		CheckoutPath:   "/checkout?modelId=m-1",
	}, false)
	if err := flow.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	result, err := flow.ConfirmBooking("cash")
	if err != nil {
		t.Fatalf("ConfirmBooking() error = %v", err)
	}
	if result.Status != ConfirmRedirectLogin || result.RedirectTo != LoginPath {
		t.Fatalf("ConfirmBooking() = %+v, want redirect to login", result)
	}
	if got := ConsumeReturnPath(store); got != "/checkout?modelId=m-1" {
		t.Errorf("remembered return path = %q", got)
	}
	if doer.callCount("POST /api/bookings") != 0 {
		t.Error("anonymous submit reached the network")
	}
}

func TestCheckoutFlow_ConfirmPreconditions(t *testing.T) {
	doer := newFakeDoer()
	scriptCheckoutData(doer, nil)
	flow, _ := newTestCheckout(doer, CheckoutParams{
		VehicleModelID: "m-1",
		StartDate:      "2024-02-10",
		EndDate:        "2024-02-12",
	}, true)
	if err := flow.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	result, err := flow.ConfirmBooking("cash")
	if err != nil {
		t.Fatalf("ConfirmBooking() error = %v", err)
	}
	if result.Status != ConfirmRejected || result.Message == "" {
		t.Fatalf("ConfirmBooking() with no unit = %+v, want rejection with message", result)
	}
	if doer.callCount("POST /api/bookings") != 0 {
		t.Error("submit without a unit reached the network")
	}

	// The rejection must leave the form re-submittable.
	if again, _ := flow.ConfirmBooking("cash"); again.Status == ConfirmIgnored {
		t.Error("precondition failure locked the form")
	}
}

func TestCheckoutFlow_ConfirmCreatesBookingOnce(t *testing.T) {
	doer := newFakeDoer()
	scriptCheckoutData(doer, []VehicleUnit{unit("v1", "Hà Nội")})
	doer.script("POST", "/api/bookings", 200, successEnvelope(Booking{
		ID: "b-1", Status: "pending", TotalDays: 2, TotalPrice: 80,
	}))
	flow, _ := newTestCheckout(doer, CheckoutParams{
		VehicleModelID: "m-1",
		StartDate:      "2024-02-10",
		EndDate:        "2024-02-12",
	}, true)
	if err := flow.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	result, err := flow.ConfirmBooking("cash")
	if err != nil {
		t.Fatalf("ConfirmBooking() error = %v", err)
	}
	if result.Status != ConfirmCreated || result.Booking == nil || result.Booking.ID != "b-1" {
		t.Fatalf("ConfirmBooking() = %+v, want created booking b-1", result)
	}

	// A repeat press after success is swallowed.
	again, err := flow.ConfirmBooking("cash")
	if err != nil {
		t.Fatalf("ConfirmBooking() repeat error = %v", err)
	}
	if again.Status != ConfirmIgnored {
		t.Errorf("repeat ConfirmBooking() = %+v, want ConfirmIgnored", again)
	}
	if n := doer.callCount("POST /api/bookings"); n != 1 {
		t.Fatalf("booking submissions = %d, want exactly 1", n)
	}
}

// gatedDoer blocks the first booking submission until released, modelling a
// slow network while the user presses the button again.
type gatedDoer struct {
	inner   *fakeDoer
	entered chan struct{}
	release chan struct{}
}

func (g *gatedDoer) Do(req *http.Request) (*http.Response, error) {
	if req.Method == http.MethodPost && req.URL.Path == "/api/bookings" {
		g.entered <- struct{}{}
		<-g.release
	}
	return g.inner.Do(req)
}

// Requirement: a duplicate press while the first submission is still in
// flight is ignored; exactly one order is sent.
func TestCheckoutFlow_DuplicateSubmitWhileInFlight(t *testing.T) {
	inner := newFakeDoer()
	scriptCheckoutData(inner, []VehicleUnit{unit("v1", "Hà Nội")})
	inner.script("POST", "/api/bookings", 200, successEnvelope(Booking{ID: "b-1", Status: "pending"}))
	gated := &gatedDoer{inner: inner, entered: make(chan struct{}), release: make(chan struct{})}

	api := &Client{BaseURL: "http://api.test", HTTP: gated}
	session := NewSessionStore(api)
	session.set(Session{UserID: "u-1", Role: "USER", IsAuthenticated: true})
	flow := NewCheckoutFlow(api, session, NewMemoryTransientStore(), CheckoutParams{
		VehicleModelID: "m-1",
		StartDate:      "2024-02-10",
		EndDate:        "2024-02-12",
	})
	if err := flow.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	first := make(chan ConfirmResult, 1)
	go func() {
		result, _ := flow.ConfirmBooking("cash")
		first <- result
	}()
	<-gated.entered

	dup, err := flow.ConfirmBooking("cash")
	if err != nil {
		t.Fatalf("duplicate ConfirmBooking() error = %v", err)
	}
	if dup.Status != ConfirmIgnored {
		t.Fatalf("duplicate ConfirmBooking() = %+v, want ConfirmIgnored", dup)
	}

	close(gated.release)
	if result := <-first; result.Status != ConfirmCreated {
		t.Fatalf("first ConfirmBooking() = %+v, want ConfirmCreated", result)
	}
	if n := inner.callCount("POST /api/bookings"); n != 1 {
		t.Fatalf("booking submissions = %d, want exactly 1", n)
	}
}

func TestCheckoutFlow_ConfirmBusinessRejection(t *testing.T) {
	doer := newFakeDoer()
	scriptCheckoutData(doer, []VehicleUnit{unit("v1", "Hà Nội")})
	doer.script("POST", "/api/bookings", 409, failureEnvelope(4002, "This vehicle is already booked for the selected dates"))
	flow, _ := newTestCheckout(doer, CheckoutParams{
		VehicleModelID: "m-1",
		StartDate:      "2024-02-10",
		EndDate:        "2024-02-12",
	}, true)
	if err := flow.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	result, err := flow.ConfirmBooking("cash")
	if err != nil {
		t.Fatalf("ConfirmBooking() error = %v", err)
	}
	if result.Status != ConfirmRejected {
		t.Fatalf("ConfirmBooking() = %+v, want ConfirmRejected", result)
	}
	if result.Message != "This vehicle is already booked for the selected dates" {
		t.Errorf("Message = %q, want server message", result.Message)
	}

	// A conflict leaves the form re-submittable.
	if again, _ := flow.ConfirmBooking("cash"); again.Status == ConfirmIgnored {
		t.Error("business rejection locked the form")
	}
}
