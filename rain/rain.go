// Package rain infers whether precipitation is expected within the current
// local calendar day of a forecast's location. The analysis is a pure
// function of a forecast bundle and a reference time; it performs no I/O
// and never fails, degrading to a zero-valued assessment when data is
// absent.
package rain

import (
	"fmt"
	"math"
	"time"

	"raincheck/models"
)

const secondsPerDay = 86400

// Thresholds for the rain-likely scan
const (
	// hourlyPopThreshold marks a single hour as likely rainy
	hourlyPopThreshold = 0.30
	// dayPopThreshold marks the whole day as likely rainy from the
	// maximum hourly probability alone
	dayPopThreshold = 0.50
	// dailyChanceThreshold is the percentage cutoff used by the
	// daily-sample fallback
	dailyChanceThreshold = 30
)

// Weather code bounds for precipitation classes: [200,600) covers
// thunderstorm, drizzle and rain
const (
	rainyCodeMin = 200
	rainyCodeMax = 600
)

// Assess analyzes a forecast bundle for rain within the local calendar day
// containing nowUTC. Hourly samples inside the local midnight-to-midnight
// window drive the result; when the bundle carries no hourly data at all,
// today's daily sample is consulted instead.
func Assess(bundle models.ForecastBundle, nowUTC int64) models.RainAssessment {
	offset := int64(bundle.TimezoneOffsetSeconds)
	localNow := nowUTC + offset
	startUTC := localNow - floorMod(localNow, secondsPerDay) - offset
	endUTC := startUTC + secondsPerDay

	if len(bundle.Hourly) == 0 {
		return assessFromDaily(bundle.Daily, offset, localNow)
	}

	var (
		found  bool
		when   string
		amount float64
		maxPop float64
	)
	for _, hour := range bundle.Hourly {
		if hour.TimestampUTC < startUTC || hour.TimestampUTC >= endUTC {
			continue
		}
		if hour.PrecipitationProbability > maxPop {
			maxPop = hour.PrecipitationProbability
		}
		if found {
			continue
		}

		measured := hour.RainMm + hour.SnowMm
		rainyCode := hour.WeatherCode >= rainyCodeMin && hour.WeatherCode < rainyCodeMax
		if rainyCode || measured > 0 || hour.PrecipitationProbability >= hourlyPopThreshold {
			found = true
			when = localClock(hour.TimestampUTC, offset)
			// Zero when the trigger was code- or probability-based
			amount = measured
		}
	}

	return models.RainAssessment{
		WillRain:      found || maxPop >= dayPopThreshold,
		ChancePercent: int(math.Round(maxPop * 100)),
		When:          when,
		AmountMm:      amount,
	}
}

// assessFromDaily derives an assessment from the day's DailySample when no
// hourly series is available
func assessFromDaily(daily []models.DailySample, offset, localNow int64) models.RainAssessment {
	day, ok := pickToday(daily, offset, localNow)
	if !ok {
		return models.RainAssessment{}
	}

	chance := int(math.Round(day.PrecipitationProbability * 100))
	amount := day.RainMmTotal
	return models.RainAssessment{
		WillRain:      chance >= dailyChanceThreshold || amount > 0,
		ChancePercent: chance,
		When:          "",
		AmountMm:      amount,
	}
}

// pickToday selects the daily sample whose local calendar day matches
// localNow, or the first sample when none matches
func pickToday(daily []models.DailySample, offset, localNow int64) (models.DailySample, bool) {
	if len(daily) == 0 {
		return models.DailySample{}, false
	}
	today := floorDiv(localNow, secondsPerDay)
	for _, day := range daily {
		if floorDiv(day.TimestampUTC+offset, secondsPerDay) == today {
			return day, true
		}
	}
	return daily[0], true
}

// localClock formats a UTC timestamp as "HH:MM" in the location's offset
func localClock(utc, offset int64) string {
	t := time.Unix(utc+offset, 0).UTC()
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// floorDiv divides rounding toward negative infinity
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// floorMod is the remainder matching floorDiv, always in [0,b)
func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}
