package cronjobs

import (
	"log"

	"cloud.google.com/go/firestore"
	"github.com/robfig/cron/v3"

	"github.com/dhanu742005-ai/pothole-app/handlers"
)

func InitCronJobs(firestoreClient *firestore.Client) {
	log.Println("\nStarting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	// Segment refresh: re-detect bad road segments from all reports every 30 minutes
	_, err := c.AddFunc("*/30 * * * *", func() {
		log.Println("\nCronJob: Bad Segment Refresh Running")
		_, segments, saved, err := handlers.RefreshSegments(firestoreClient)
		if err != nil {
			log.Println("CronJob: segment refresh failed:", err)
			return
		}
		log.Printf("CronJob: detected %d bad segments, saved %d", len(segments), saved)
	})
	if err != nil {
		log.Println("Error scheduling Bad Segment Refresh:", err)
	}

	c.Start()
}
