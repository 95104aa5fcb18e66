package calculator

import "time"

// Tokyo is the exchange time zone; trading dates are taken in it.
var Tokyo = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}()
