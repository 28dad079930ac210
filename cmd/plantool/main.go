// Command plantool plans a trip offline: waypoints resolve through the
// built-in city table and legs use straight-line estimates, so no network
// access or database is needed. Useful for eyeballing schedules and for
// demos.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/adapters/route"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/config"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/services"
)

func main() {
	from := flag.String("from", "", "current location (e.g. \"Chicago, IL\")")
	pickup := flag.String("pickup", "", "pickup location")
	to := flag.String("to", "", "dropoff location")
	cycle := flag.Float64("cycle", 0, "cycle hours already used")
	flag.Parse()

	if *from == "" || *pickup == "" || *to == "" {
		flag.Usage()
		os.Exit(2)
	}

	rules, err := config.RulesFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	// Nil primaries: geocoding falls through to the static city table and
	// routing to straight-line estimates.
	geocoder := route.NewFallbackGeocoder(nil)
	routes := route.NewFallbackRouteProvider(nil, rules.AvgSpeedKmh, nil)

	req := services.PlanTripRequest{
		CurrentLocation:  *from,
		PickupLocation:   *pickup,
		DropoffLocation:  *to,
		CurrentCycleUsed: *cycle,
	}
	plan, err := services.PlanTrip(context.Background(), req, geocoder, routes, rules)
	if err != nil {
		log.Fatal(err)
	}

	printPlan(plan)
}

func printPlan(plan *domain.TripPlan) {
	fmt.Printf("Trip %s\n", plan.ID)
	fmt.Printf("  %s -> %s -> %s\n", plan.CurrentLocation, plan.PickupLocation, plan.DropoffLocation)
	fmt.Printf("  %.0f km, %.1f driving hours over %d day(s)\n",
		plan.TotalDistanceKm, plan.TotalDurationHours, len(plan.Days))
	if plan.Degraded {
		fmt.Println("  (distances are straight-line estimates)")
	}

	fmt.Println("\nItinerary:")
	for _, s := range plan.Stops {
		fmt.Printf("  %7.2fh  %-9s %-35s %7.1f km  %.1fh stop\n",
			s.HoursFromStart, s.Type, s.Location, s.DistanceKm, s.StopDuration)
	}

	fmt.Println("\nDaily logs:")
	for _, d := range plan.Days {
		fmt.Printf("  Day %d  driving=%.2fh on=%.2fh off=%.2fh sleeper=%.2fh cycle=%.1fh",
			d.Day, d.DrivingHours, d.OnDutyHours, d.OffDutyHours, d.SleeperHours, d.CycleUsed)
		if d.Requires34HourRestart {
			fmt.Print("  RESTART ADVISED")
		}
		fmt.Println()
		for _, seg := range d.Segments {
			fmt.Printf("    %05.2f-%05.2f %-3s %s\n", seg.StartHour, seg.EndHour, seg.Status, seg.Remark)
		}
	}
}
