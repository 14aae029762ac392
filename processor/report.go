// Package processor runs the report ingestion pipeline shared by the web
// upload, the messaging webhook, and manual admin additions: model inference,
// severity derivation, location enrichment, and persistence.
package processor

import (
	"context"
	"log"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/dhanu742005-ai/pothole-app/db"
	"github.com/dhanu742005-ai/pothole-app/geocode"
	"github.com/dhanu742005-ai/pothole-app/mlmodel"
	"github.com/dhanu742005-ai/pothole-app/types"
)

const reverseGeocodeTimeout = 5 * time.Second

// ProcessReport runs the full pipeline for one submitted image. latStr and
// lonStr are the raw form values; empty or malformed coordinates produce a
// report without GPS, which is stored but excluded from spatial computations.
// Inference failures degrade to zero detections rather than failing the
// submission.
func ProcessReport(client *firestore.Client, imagePath, latStr, lonStr, source string) (types.Report, error) {
	log.Printf("[%s] Processing image: %s | Lat: %s | Lon: %s", strings.ToUpper(source), imagePath, latStr, lonStr)

	detections, err := mlmodel.CallModel(imagePath)
	if err != nil {
		log.Printf("[%s] Model inference error: %v", strings.ToUpper(source), err)
		detections = 0
	}

	severity := types.SeverityFromDetections(detections)
	status := "Pothole Detected"
	if severity == types.SeverityNone {
		status = "No Pothole Detected"
	}

	latitude := types.ParseCoordinate(latStr)
	longitude := types.ParseCoordinate(lonStr)
	if latitude == nil || longitude == nil {
		latitude, longitude = nil, nil
	}

	road, area, fullAddress := "", "", ""
	if latitude != nil && longitude != nil {
		ctx, cancel := context.WithTimeout(context.Background(), reverseGeocodeTimeout)
		road, area, fullAddress, err = geocode.ReverseGeocode(ctx, *latitude, *longitude)
		cancel()
		if err != nil {
			log.Printf("[%s] Reverse geocoding error: %v", strings.ToUpper(source), err)
		}
	}

	report := types.Report{
		ImagePath:   imagePath,
		Filename:    filenameFor(imagePath),
		Detections:  detections,
		Severity:    severity,
		Status:      status,
		Latitude:    latitude,
		Longitude:   longitude,
		Road:        road,
		Area:        area,
		FullAddress: fullAddress,
		Source:      source,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}

	id, err := db.SaveReport(client, report)
	if err != nil {
		return report, err
	}
	report.ID = id

	log.Printf("[%s] Report %s saved: %d detections, severity %s", strings.ToUpper(source), id, detections, severity)
	return report, nil
}

func filenameFor(imagePath string) string {
	if imagePath == "" {
		return "No Image"
	}
	return filepath.Base(imagePath)
}
