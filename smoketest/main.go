package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"itinctl/pkg/apperror"
	"itinctl/pkg/itinerary"
)

// Manual check against a running backend: go run ./smoketest [backend-url]
func main() {
	url := "http://localhost:5001"
	if len(os.Args) > 1 {
		url = os.Args[1]
	}

	client := itinerary.NewClient(url, 30*time.Second, nil)
	ctx := context.Background()

	fmt.Printf("Checking %s/health...\n", client.BaseURL())
	status, err := client.FetchHealth(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Status:", status)

	req := itinerary.Request{
		Depart:      "Gare Saint-Jean, Bordeaux",
		Destination: "Place de la Victoire, Bordeaux",
		Mode:        itinerary.ModeOptimal,
	}
	fmt.Printf("\nPlanning %s -> %s...\n", req.Depart, req.Destination)

	result, err := client.Plan(ctx, req)
	if err != nil {
		fmt.Println("Error:", apperror.UserMessage(err))
		fmt.Println("Detail:", err)
		return
	}

	fmt.Printf("\n--- 🗺️ %s -> %s ---\n", result.Depart, result.Destination)
	fmt.Printf("Distance: %.2f km, Duration: %.0f min, CO2: %.2f kg\n", result.DistanceKm, result.DurationMin, result.CO2Kg)
	fmt.Printf("Route points: %d\n", len(result.RouteCoords))
	for _, b := range result.Buses {
		delayStr := ""
		if !b.OnTime() {
			delayStr = fmt.Sprintf(" (+%d min delay)", b.DelayMin)
		}
		fmt.Printf("[%s] %s %d/%d%s\n", b.ID, b.RouteName, b.Passengers, itinerary.BusCapacity, delayStr)
	}
}
