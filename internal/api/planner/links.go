package planner

import (
	"strconv"
	"strings"
	"time"

	"github.com/wanderplan/go-trip-planner/internal/types"
)

// FlightsLink builds the flight-search deep link. Missing inputs are
// simply omitted from the query.
func FlightsLink(originCity, destCity string, depart, ret *time.Time) string {
	base := "https://www.google.com/travel/flights"
	dest := strings.ReplaceAll(destCity, " ", "%20")
	q := "?q=Flights%20to%20" + dest
	if originCity != "" {
		q = "?q=Flights%20from%20" + strings.ReplaceAll(originCity, " ", "%20") + "%20to%20" + dest
	}
	if depart != nil {
		q += "%20on%20" + depart.Format("2006-01-02")
	}
	if ret != nil {
		q += "%20return%20" + ret.Format("2006-01-02")
	}
	return base + q
}

// HotelsLink builds the hotel-search deep link with optional check-in and
// check-out dates.
func HotelsLink(city string, checkin, checkout *time.Time) string {
	base := "https://www.booking.com/searchresults.html"
	params := "?ss=" + strings.ReplaceAll(city, " ", "+")
	if checkin != nil {
		params += "&checkin_year=" + strconv.Itoa(checkin.Year()) +
			"&checkin_month=" + strconv.Itoa(int(checkin.Month())) +
			"&checkin_monthday=" + strconv.Itoa(checkin.Day())
	}
	if checkout != nil {
		params += "&checkout_year=" + strconv.Itoa(checkout.Year()) +
			"&checkout_month=" + strconv.Itoa(int(checkout.Month())) +
			"&checkout_monthday=" + strconv.Itoa(checkout.Day())
	}
	return base + params
}

// buildLinks assembles both booking links for an itinerary.
func buildLinks(destination string, d0, d1 time.Time) types.Links {
	return types.Links{
		Flights: FlightsLink("", destination, &d0, &d1),
		Hotels:  HotelsLink(destination, &d0, &d1),
	}
}
