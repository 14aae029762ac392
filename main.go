package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/dhanu742005-ai/pothole-app/cronjobs"
	"github.com/dhanu742005-ai/pothole-app/db"
	"github.com/dhanu742005-ai/pothole-app/geocode"
	"github.com/dhanu742005-ai/pothole-app/osrm"
	"github.com/dhanu742005-ai/pothole-app/routeplanner"
	"github.com/dhanu742005-ai/pothole-app/routes"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, relying on environment")
	}

	// Print and check env
	if os.Getenv("OPENAI_API_KEY") != "" {
		fmt.Println("OPENAI_API_KEY loaded, segment summaries enabled")
	}
	if os.Getenv("ML_MODEL_URL") == "" {
		log.Println("Warning: ML_MODEL_URL not set, reports will record zero detections")
	}

	// Init firestore
	firestoreClient, err := db.InitFirestore()
	if err != nil {
		log.Fatalf("Failed to initialize Firestore: %v", err)
	}
	defer db.CloseFirestore() // Firestore client is closed on exit

	// Initialize cron jobs
	cronjobs.InitCronJobs(firestoreClient)

	// Route planning: OSRM serves unbiased routes; Google Directions scores
	// alternatives against avoid zones when Maps credentials are present.
	var avoidance routeplanner.RouteProvider
	if os.Getenv("MAPS_CREDENTIALS") != "" {
		avoidance = &geocode.DirectionsProvider{}
	} else {
		log.Println("MAPS_CREDENTIALS not set, alternative routes will not be biased away from bad segments")
	}
	provider := routeplanner.NewCompositeProvider(osrm.NewClient(), avoidance)
	planner := routeplanner.New(&geocode.Resolver{}, provider)

	r := routes.SetupRouter(firestoreClient, planner)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
