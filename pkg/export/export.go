package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"

	"emission-estimator/internal/models"
)

// Report wraps result records for download. Result records are the only data
// exporters consume.
type Report struct {
	ID          string                     `json:"id"`
	GeneratedAt time.Time                  `json:"generated_at"`
	Results     []models.CalculationResult `json:"results"`
}

func NewReport(results []models.CalculationResult) Report {
	return Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Results:     results,
	}
}

// WriteJSON writes the report to w in JSON format.
func WriteJSON(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	return enc.Encode(report)
}

// WriteCSV writes the result records to w, one row per mode.
func WriteCSV(w io.Writer, report Report) error {
	cw := csv.NewWriter(w)
	header := []string{"mode", "distance_km", "fuel_consumption", "emission_kg", "energy_source", "traffic", "weather", "load_factor"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range report.Results {
		rec := []string{
			string(r.Mode),
			strconv.FormatFloat(r.DistanceKm, 'f', -1, 64),
			strconv.FormatFloat(r.FuelConsumption, 'f', -1, 64),
			strconv.FormatFloat(r.EmissionKg, 'f', -1, 64),
			string(r.EnergySource),
			string(r.Scenario.Traffic),
			string(r.Scenario.Weather),
			string(r.Scenario.LoadFactor),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
