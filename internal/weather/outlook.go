package weather

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Outlook reduces a forecast payload into the fixed-format textual summary
// handed to the planning agents. Missing series render as "N/A"; the hourly
// precipitation peak is tracked separately from the daily maximum field.
func Outlook(label, date string, generatedAt time.Time, f *Forecast) string {
	maxTemp := pickNumber(f.Daily.TempMax)
	minTemp := pickNumber(f.Daily.TempMin)
	sunrise := pickString(f.Daily.Sunrise)
	sunset := pickString(f.Daily.Sunset)
	maxPrecip := pickNumber(f.Daily.PrecipProbabilityMax)

	precipRisk := "No precipitation data"
	if len(f.Hourly.PrecipProbability) > 0 {
		precipRisk = formatNumber(maxOf(f.Hourly.PrecipProbability)) + "%"
	}

	// Midpoint sample: index = floor(len/2).
	humiditySnapshot := "N/A"
	if len(f.Hourly.Humidity) > 0 {
		humiditySnapshot = formatNumber(f.Hourly.Humidity[len(f.Hourly.Humidity)/2]) + "%"
	}
	middayTemp := "N/A"
	if len(f.Hourly.Temperature) > 0 {
		middayTemp = formatNumber(f.Hourly.Temperature[len(f.Hourly.Temperature)/2]) + "°C"
	}

	timestamp := generatedAt.UTC().Format("2006-01-02 15:04 UTC")

	var b strings.Builder
	fmt.Fprintf(&b, "Weather outlook for %s on %s (generated %s):\n", label, date, timestamp)
	fmt.Fprintf(&b, "- Daily range: %s°C – %s°C (midday ~ %s)\n", minTemp, maxTemp, middayTemp)
	fmt.Fprintf(&b, "- Humidity snapshot: %s\n", humiditySnapshot)
	fmt.Fprintf(&b, "- Peak precipitation probability: %s%% (hourly max %s)\n", maxPrecip, precipRisk)
	fmt.Fprintf(&b, "- Sunrise at %s, sunset at %s\n", sunrise, sunset)
	b.WriteString("- Tip: favor indoor plans if precipitation exceeds 40% or humidity stays above 80%.")
	return b.String()
}

func pickNumber(series []float64) string {
	if len(series) == 0 {
		return "N/A"
	}
	return formatNumber(series[0])
}

func pickString(series []string) string {
	if len(series) == 0 {
		return "N/A"
	}
	return series[0]
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func maxOf(series []float64) float64 {
	m := series[0]
	for _, v := range series[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
