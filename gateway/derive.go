package gateway

import (
	"strings"
	"time"

	"tn-weather/models"
)

const (
	rainSummary  = "மழை தொடரும் - Rain expected to continue for next 2 hours"
	clearSummary = "தெளிவான வானிலை - Clear weather expected for next 2 hours"
)

// maxIntensity is the heaviest precipitation level in the outlook.
const maxIntensity = 3

// minForecastTemp floors every hourly temperature.
const minForecastTemp = 20

var outlookLabels = [8]string{"Now", "+15min", "+30min", "+45min", "+60min", "+75min", "+90min", "+105min"}

// outlookSteps is the decay applied to the base intensity at each label.
var outlookSteps = [8]int{0, 1, 0, -1, -1, -2, -2, -3}

// IST is the zone forecast labels are rendered in.
var IST = time.FixedZone("IST", 5*60*60+30*60)

func isRainy(condition string) bool {
	return strings.Contains(strings.ToLower(condition), "rain")
}

// DerivePrecipitationOutlook projects the next two hours of precipitation from
// the record's condition. The result depends on nothing else.
func DerivePrecipitationOutlook(record models.WeatherRecord) models.PrecipitationOutlook {
	base, summary := 0, clearSummary
	if isRainy(record.Condition) {
		base, summary = 2, rainSummary
	}

	samples := make([]models.PrecipitationSample, len(outlookLabels))
	for i, label := range outlookLabels {
		samples[i] = models.PrecipitationSample{
			Label:     label,
			Intensity: max(0, min(maxIntensity, base+outlookSteps[i])),
		}
	}

	return models.PrecipitationOutlook{Summary: summary, Samples: samples}
}

// DeriveHourlyForecast projects 12 hourly samples starting at now.
func DeriveHourlyForecast(record models.WeatherRecord, now time.Time) []models.HourlyForecastSample {
	rainy := isRainy(record.Condition)
	laterCondition, laterIcon := models.ConditionPartlyCloudy, models.IconPartlyCloudy
	if rainy {
		laterCondition, laterIcon = models.ConditionCloudy, models.IconCloudy
	}

	hourly := make([]models.HourlyForecastSample, 12)
	for i := range hourly {
		at := now.Add(time.Duration(i) * time.Hour).In(IST)

		sample := models.HourlyForecastSample{
			Time:        at.Format("3 PM"),
			Temperature: max(minForecastTemp, record.Temperature+temperatureVariation(at.Hour(), i)),
			Condition:   laterCondition,
			Icon:        laterIcon,
		}
		if i < 3 {
			sample.Condition = record.Condition
			sample.Icon = record.Icon
		}
		if rainy {
			sample.Precipitation = max(10, 80-10*i)
		} else {
			sample.Precipitation = max(0, 20-3*i)
		}

		hourly[i] = sample
	}

	return hourly
}

// temperatureVariation is the time-of-day adjustment for the i-th forecast hour.
func temperatureVariation(hourOfDay, i int) int {
	switch {
	case hourOfDay >= 6 && hourOfDay <= 10:
		return 2 * i
	case hourOfDay >= 11 && hourOfDay <= 15:
		return 3
	case hourOfDay >= 16 && hourOfDay <= 18:
		return 1
	default:
		return -2 - i
	}
}
