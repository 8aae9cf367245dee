package client

import (
	"fmt"
	"math"
	"net/url"
	"strings"
	"sync"
	"time"
)

// VehicleModel is the catalog entry shown at checkout.
type VehicleModel struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Brand        string   `json:"brand"`
	PricePerDay  float64  `json:"pricePerDay"`
	Seats        int      `json:"seats"`
	Fuel         string   `json:"fuel"`
	Transmission string   `json:"transmission"`
	Features     []string `json:"features"`
	Images       []string `json:"images"`
}

// VehicleUnit is one rentable vehicle at a branch.
type VehicleUnit struct {
	ID             string `json:"id"`
	VehicleModelID string `json:"vehicleModelId"`
	LicensePlate   string `json:"licensePlate"`
	Location       string `json:"location"`
	Status         string `json:"status"`
}

// Booking is the created order returned by submission.
type Booking struct {
	ID         string  `json:"id"`
	Status     string  `json:"status"`
	TotalDays  int     `json:"totalDays"`
	TotalPrice float64 `json:"totalPrice"`
}

const checkoutDateLayout = "2006-01-02"

// DeriveLocations returns the deduplicated, order-preserving set of
// non-empty trimmed locations across the units.
func DeriveLocations(units []VehicleUnit) []string {
	seen := make(map[string]bool)
	locations := make([]string, 0, len(units))
	for _, u := range units {
		loc := strings.TrimSpace(u.Location)
		key := strings.ToLower(loc)
		if loc == "" || seen[key] {
			continue
		}
		seen[key] = true
		locations = append(locations, loc)
	}
	return locations
}

// ResolveLocation keeps the current selection if still offered, falls back
// to the first available location, and clears when none are offered.
func ResolveLocation(current string, available []string) string {
	for _, loc := range available {
		if strings.EqualFold(strings.TrimSpace(current), loc) {
			return loc
		}
	}
	if len(available) > 0 {
		return available[0]
	}
	return ""
}

// FilterUnits returns the units at the selected location, matched
// case-insensitively after trimming. No selection means every unit.
func FilterUnits(units []VehicleUnit, location string) []VehicleUnit {
	location = strings.TrimSpace(location)
	if location == "" {
		return units
	}
	filtered := make([]VehicleUnit, 0, len(units))
	for _, u := range units {
		if strings.EqualFold(strings.TrimSpace(u.Location), location) {
			filtered = append(filtered, u)
		}
	}
	return filtered
}

// ResolveUnit keeps the current unit if still offered, then prefers the
// preselected hint, then the first offered unit, and clears when the
// filtered set is empty.
func ResolveUnit(currentID, hintID string, filtered []VehicleUnit) string {
	for _, u := range filtered {
		if currentID != "" && u.ID == currentID {
			return u.ID
		}
	}
	for _, u := range filtered {
		if hintID != "" && u.ID == hintID {
			return u.ID
		}
	}
	if len(filtered) > 0 {
		return filtered[0].ID
	}
	return ""
}

// CountDays returns the ceiling of the rental period in whole days. A
// non-positive period counts as zero and blocks submission.
func CountDays(startDate, endDate string) int {
	start, err := time.Parse(checkoutDateLayout, startDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse(checkoutDateLayout, endDate)
	if err != nil {
		return 0
	}
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days <= 0 {
		return 0
	}
	return days
}

// CheckoutState is a snapshot of the reconciler's derived data.
type CheckoutState struct {
	Model              *VehicleModel
	AvailableLocations []string
	SelectedLocation   string
	FilteredUnits      []VehicleUnit
	SelectedUnitID     string
	TotalDays          int
	TotalPrice         float64
}

// ConfirmStatus is the outcome of a submission attempt.
type ConfirmStatus int

const (
	// ConfirmCreated is the terminal success state; no second submission
	// is allowed.
	ConfirmCreated ConfirmStatus = iota
	// ConfirmRejected leaves the form re-submittable with a message.
	ConfirmRejected
	// ConfirmRedirectLogin means the user must sign in first; the intended
	// return path has been remembered.
	ConfirmRedirectLogin
	// ConfirmIgnored is a duplicate submit while one is in flight or after
	// one succeeded.
	ConfirmIgnored
)

// ConfirmResult is the outcome of ConfirmBooking.
type ConfirmResult struct {
	Status     ConfirmStatus
	Booking    *Booking
	Message    string
	RedirectTo string
}

// CheckoutFlow reconciles dates, branch locations and unit availability
// into a submittable booking. Selections converge on every data change:
// they are always members of the current candidate sets.
type CheckoutFlow struct {
	api     *Client
	session *SessionStore
	store   TransientStore

	mu sync.Mutex

	modelID       string
	startDate     string
	endDate       string
	locationHint  string
	unitHint      string
	priceOverride float64
	checkoutPath  string

	model            *VehicleModel
	units            []VehicleUnit
	locations        []string
	selectedLocation string
	filteredUnits    []VehicleUnit
	selectedUnitID   string

	submitting bool
	submitted  bool
	booking    *Booking
}

// CheckoutParams carries what the previous page hands to checkout.
type CheckoutParams struct {
	VehicleModelID string
	StartDate      string
	EndDate        string
	LocationHint   string
	VehicleUnitID  string
	PriceOverride  float64
	// CheckoutPath is remembered as the return target when an anonymous
	// user is bounced to login at submit time.
	CheckoutPath string
}

func NewCheckoutFlow(api *Client, session *SessionStore, store TransientStore, params CheckoutParams) *CheckoutFlow {
	return &CheckoutFlow{
		api:              api,
		session:          session,
		store:            store,
		modelID:          params.VehicleModelID,
		startDate:        params.StartDate,
		endDate:          params.EndDate,
		locationHint:     params.LocationHint,
		unitHint:         params.VehicleUnitID,
		priceOverride:    params.PriceOverride,
		checkoutPath:     params.CheckoutPath,
		selectedLocation: strings.TrimSpace(params.LocationHint),
		selectedUnitID:   params.VehicleUnitID,
	}
}

// Load fetches the model and the available units concurrently, then
// reconciles the selections.
func (f *CheckoutFlow) Load() error {
	var (
		wg       sync.WaitGroup
		model    VehicleModel
		units    []VehicleUnit
		modelErr error
		unitsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		res := f.api.Get("/api/catalog/models/" + url.PathEscape(f.modelID))
		if res.Kind != Success {
			modelErr = resultError(res)
			return
		}
		var detail struct {
			Model VehicleModel `json:"model"`
		}
		if err := res.Decode(&detail); err != nil {
			modelErr = err
			return
		}
		model = detail.Model
	}()
	go func() {
		defer wg.Done()
		units, unitsErr = f.fetchAvailableUnits()
	}()
	wg.Wait()

	if modelErr != nil {
		return modelErr
	}
	if unitsErr != nil {
		return unitsErr
	}

	f.mu.Lock()
	f.model = &model
	f.units = units
	f.reconcile()
	f.mu.Unlock()
	return nil
}

func (f *CheckoutFlow) fetchAvailableUnits() ([]VehicleUnit, error) {
	q := url.Values{}
	q.Set("modelId", f.modelID)
	q.Set("startDate", f.startDate)
	q.Set("endDate", f.endDate)
	res := f.api.Get("/api/catalog/availability?" + q.Encode())
	if res.Kind != Success {
		return nil, resultError(res)
	}
	var payload struct {
		Units []VehicleUnit `json:"units"`
	}
	if err := res.Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Units, nil
}

func resultError(res Result) error {
	if res.Err != nil {
		return res.Err
	}
	return fmt.Errorf("%s", res.Message)
}

// reconcile recomputes the derived selections. Callers hold f.mu. Units
// with status deleted never reach this point; the availability endpoint
// already excludes them.
func (f *CheckoutFlow) reconcile() {
	f.locations = DeriveLocations(f.units)
	f.selectedLocation = ResolveLocation(f.selectedLocation, f.locations)
	f.filteredUnits = FilterUnits(f.units, f.selectedLocation)
	f.selectedUnitID = ResolveUnit(f.selectedUnitID, f.unitHint, f.filteredUnits)
}

// SetDates changes the rental period and refetches availability.
func (f *CheckoutFlow) SetDates(startDate, endDate string) error {
	f.mu.Lock()
	f.startDate = startDate
	f.endDate = endDate
	f.mu.Unlock()

	if CountDays(startDate, endDate) == 0 {
		f.mu.Lock()
		f.units = nil
		f.reconcile()
		f.mu.Unlock()
		return nil
	}

	units, err := f.fetchAvailableUnits()
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.units = units
	f.reconcile()
	f.mu.Unlock()
	return nil
}

// SelectLocation switches the branch and reconverges the unit selection.
func (f *CheckoutFlow) SelectLocation(location string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selectedLocation = ResolveLocation(location, f.locations)
	f.filteredUnits = FilterUnits(f.units, f.selectedLocation)
	f.selectedUnitID = ResolveUnit(f.selectedUnitID, f.unitHint, f.filteredUnits)
}

// SelectUnit picks a specific unit if it is currently offered.
func (f *CheckoutFlow) SelectUnit(unitID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.filteredUnits {
		if u.ID == unitID {
			f.selectedUnitID = unitID
			return
		}
	}
}

// State returns a snapshot of the derived checkout data.
func (f *CheckoutFlow) State() CheckoutState {
	f.mu.Lock()
	defer f.mu.Unlock()

	days := CountDays(f.startDate, f.endDate)
	pricePerDay := f.priceOverride
	if pricePerDay <= 0 && f.model != nil {
		pricePerDay = f.model.PricePerDay
	}

	locations := make([]string, len(f.locations))
	copy(locations, f.locations)
	units := make([]VehicleUnit, len(f.filteredUnits))
	copy(units, f.filteredUnits)

	return CheckoutState{
		Model:              f.model,
		AvailableLocations: locations,
		SelectedLocation:   f.selectedLocation,
		FilteredUnits:      units,
		SelectedUnitID:     f.selectedUnitID,
		TotalDays:          days,
		TotalPrice:         pricePerDay * float64(days),
	}
}

// Booking returns the created order after a successful submission.
func (f *CheckoutFlow) Booking() *Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.booking
}

// ConfirmBooking submits the order. The in-flight guard is taken
// synchronously before any asynchronous work, so a duplicate submit is a
// no-op rather than a second network call. Precondition failures abort
// before any network side effect and leave the form re-submittable.
func (f *CheckoutFlow) ConfirmBooking(paymentMethod string) (ConfirmResult, error) {
	f.mu.Lock()
	if f.submitting || f.submitted {
		f.mu.Unlock()
		return ConfirmResult{Status: ConfirmIgnored}, nil
	}
	f.submitting = true

	modelID := f.modelID
	startDate, endDate := f.startDate, f.endDate
	unitID := f.selectedUnitID
	f.mu.Unlock()

	clearGuard := func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}

	if !f.session.Current().IsAuthenticated {
		clearGuard()
		RememberReturnPath(f.store, f.checkoutPath)
		return ConfirmResult{Status: ConfirmRedirectLogin, RedirectTo: LoginPath}, nil
	}
	if modelID == "" || CountDays(startDate, endDate) == 0 {
		clearGuard()
		return ConfirmResult{Status: ConfirmRejected, Message: "Please choose your rental dates."}, nil
	}
	if unitID == "" {
		clearGuard()
		return ConfirmResult{Status: ConfirmRejected, Message: "No vehicle is available for this branch and period."}, nil
	}

	res := f.api.Post("/api/bookings", map[string]string{
		"vehicleModelId": modelID,
		"vehicleId":      unitID,
		"startDate":      startDate,
		"endDate":        endDate,
		"paymentMethod":  paymentMethod,
	})
	switch res.Kind {
	case TransportFailure:
		clearGuard()
		return ConfirmResult{Status: ConfirmRejected, Message: res.Message}, res.Err
	case BusinessFailure:
		clearGuard()
		return ConfirmResult{Status: ConfirmRejected, Message: res.Message}, nil
	}

	var booking Booking
	if err := res.Decode(&booking); err != nil {
		clearGuard()
		return ConfirmResult{Status: ConfirmRejected, Message: genericFailureMessage}, err
	}

	f.mu.Lock()
	f.submitting = false
	f.submitted = true
	f.booking = &booking
	f.mu.Unlock()

	return ConfirmResult{Status: ConfirmCreated, Booking: &booking}, nil
}
