package reservation

import (
	"math"
	"time"
)

const hoursPerDay = 24

// Nights returns the number of billable nights between the two dates
// at calendar-day granularity. A same-day window yields zero nights and
// is rejected by the create/update paths, never priced.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / hoursPerDay))
}

// Total prices a stay: nights times the nightly rate, rounded to cents.
func Total(rate float64, nights int) float64 {
	total := rate * float64(nights)
	return math.Round(total*100) / 100
}
