package services

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/woodworkpro/woodwork-server/internal/models"
)

// PriceSet holds the five active unit prices used while a job is being
// edited. Applying a template replaces the whole set; a partial application
// is not possible.
type PriceSet struct {
	Door    float64 `json:"door"`
	Beading float64 `json:"beading"`
	Frame   float64 `json:"frame"`
	Paling  float64 `json:"paling"`
	Polish  float64 `json:"polish"`
}

// DefaultPrices returns the price set a fresh job editor starts from.
func DefaultPrices() PriceSet {
	return PriceSet{Door: 300, Beading: 100, Frame: 50, Paling: 50, Polish: 100}
}

// ApplyTemplate copies all five template prices into a fresh PriceSet.
func ApplyTemplate(t models.PriceTemplate) PriceSet {
	return PriceSet{Door: t.Door, Beading: t.Beading, Frame: t.Frame, Paling: t.Paling, Polish: t.Polish}
}

// Coerce maps any value that must never reach a stored total (NaN, ±Inf,
// negatives) to 0.
func Coerce(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ParseMeasurement parses a numeric form field. Blank or unparsable input
// parses to 0, not an error: the system never blocks on malformed numbers,
// it silently zeroes them.
func ParseMeasurement(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return Coerce(v)
}

// Measurement is a float64 that unmarshals leniently: JSON numbers, numeric
// strings, blanks and null are all accepted, with anything invalid coerced
// to 0 under the ParseMeasurement rule.
type Measurement float64

func (m *Measurement) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	s = strings.Trim(s, `"`)
	if s == "null" {
		s = ""
	}
	*m = Measurement(ParseMeasurement(s))
	return nil
}

// DoorMeasurements carries the five sanitized measurements of one door as
// entered in the editor, before prices are frozen in.
type DoorMeasurements struct {
	Area    float64
	Beading float64
	Frame   float64
	Paling  float64
	Polish  float64
}

// PricingService computes door subtotals and job grand totals.
type PricingService struct{}

func NewPricingService() *PricingService { return &PricingService{} }

// DoorSubtotal recomputes a door's subtotal from its stored measurements
// and frozen prices. Inputs pass through Coerce so a NaN can never
// propagate into a stored total.
func (s *PricingService) DoorSubtotal(d models.Door) float64 {
	return Coerce(d.Area)*Coerce(d.AreaPrice) +
		Coerce(d.Beading)*Coerce(d.BeadingPrice) +
		Coerce(d.Frame)*Coerce(d.FramePrice) +
		Coerce(d.Paling)*Coerce(d.PalingPrice) +
		Coerce(d.Polish)*Coerce(d.PolishPrice)
}

// GrandTotal sums the recomputed subtotals of all doors.
func (s *PricingService) GrandTotal(doors []models.Door) float64 {
	var total float64
	for _, d := range doors {
		total += s.DoorSubtotal(d)
	}
	return total
}

// BuildDoors turns editor measurements into door records: measurements are
// sanitized, the active prices are frozen into each door, and subtotals are
// recomputed from those frozen values.
func (s *PricingService) BuildDoors(ms []DoorMeasurements, prices PriceSet) []models.Door {
	doors := make([]models.Door, 0, len(ms))
	for i, m := range ms {
		d := models.Door{
			Position:     i,
			Area:         Coerce(m.Area),
			AreaPrice:    Coerce(prices.Door),
			Beading:      Coerce(m.Beading),
			BeadingPrice: Coerce(prices.Beading),
			Frame:        Coerce(m.Frame),
			FramePrice:   Coerce(prices.Frame),
			Paling:       Coerce(m.Paling),
			PalingPrice:  Coerce(prices.Paling),
			Polish:       Coerce(m.Polish),
			PolishPrice:  Coerce(prices.Polish),
		}
		d.Subtotal = s.DoorSubtotal(d)
		doors = append(doors, d)
	}
	return doors
}

// HasBillableWork reports whether at least one door carries a non-zero
// measurement. A save with no billable work is rejected.
func (s *PricingService) HasBillableWork(doors []models.Door) bool {
	for _, d := range doors {
		if d.Area > 0 || d.Beading > 0 || d.Frame > 0 || d.Paling > 0 || d.Polish > 0 {
			return true
		}
	}
	return false
}

// UntitledTitle is the fallback title for jobs saved without one.
func UntitledTitle(at time.Time) string {
	return "Untitled Job " + at.Format("1/2/2006")
}
