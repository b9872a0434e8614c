package weather

// Forecast is the single-day Open-Meteo payload reduced to the series the
// outlook consumes. Series may be shorter than expected or empty entirely;
// the summarizer renders gaps as "N/A" instead of failing.
type Forecast struct {
	Hourly HourlySeries `json:"hourly"`
	Daily  DailySeries  `json:"daily"`
}

// HourlySeries carries the hour-by-hour samples for one day.
type HourlySeries struct {
	Temperature       []float64 `json:"temperature_2m"`
	PrecipProbability []float64 `json:"precipitation_probability"`
	Humidity          []float64 `json:"relative_humidity_2m"`
}

// DailySeries carries the per-day aggregates; each slice holds one entry for
// a single-day request.
type DailySeries struct {
	TempMax              []float64 `json:"temperature_2m_max"`
	TempMin              []float64 `json:"temperature_2m_min"`
	PrecipProbabilityMax []float64 `json:"precipitation_probability_max"`
	Sunrise              []string  `json:"sunrise"`
	Sunset               []string  `json:"sunset"`
}
