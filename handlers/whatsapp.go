package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dhanu742005-ai/pothole-app/db"
	"github.com/dhanu742005-ai/pothole-app/processor"
	"github.com/dhanu742005-ai/pothole-app/types"
)

var mediaClient = &http.Client{Timeout: 15 * time.Second}

// WhatsappWebhookHandler receives Twilio-style form webhooks. A complete
// report needs both an image and a location, which may arrive in separate
// messages in either order; the partial state is persisted per sender until
// both halves are present, then the report is processed and the state
// cleared.
func WhatsappWebhookHandler(c *gin.Context, firestoreClient *firestore.Client) {
	log.Println("Handler: WhatsApp webhook received")

	from := c.PostForm("From")
	mediaURL := c.PostForm("MediaUrl0")
	latitude := c.PostForm("Latitude")
	longitude := c.PostForm("Longitude")

	log.Printf("Handler: WhatsApp from %s, media: %t, lat: %s, lon: %s", from, mediaURL != "", latitude, longitude)

	if from == "" {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}

	pending, err := db.GetPendingReport(firestoreClient, from)
	if err != nil {
		log.Printf("ERROR reading pending report: %v", err)
		c.String(http.StatusInternalServerError, "Server error")
		return
	}

	if mediaURL != "" {
		imagePath, err := downloadMedia(mediaURL)
		if err != nil {
			log.Printf("ERROR downloading media: %v", err)
			c.String(http.StatusBadRequest, "Failed to download image")
			return
		}
		pending.ImagePath = imagePath
	}

	if latitude != "" && longitude != "" {
		pending.Latitude = latitude
		pending.Longitude = longitude
	}

	if pending.HasImage() && pending.HasLocation() {
		log.Println("Handler: WhatsApp report complete, processing...")

		report, err := processor.ProcessReport(
			firestoreClient,
			pending.ImagePath,
			pending.Latitude,
			pending.Longitude,
			"whatsapp",
		)
		if err != nil {
			log.Printf("ERROR processing WhatsApp report: %v", err)
			c.String(http.StatusInternalServerError, "Server error processing report")
			return
		}

		if err := db.DeletePendingReport(firestoreClient, from); err != nil {
			log.Printf("Warning: failed to clear pending state: %v", err)
		}

		road := report.Road
		if road == "" {
			road = types.UnknownRoad
		}
		area := report.Area
		if area == "" {
			area = types.UnknownArea
		}

		c.String(http.StatusOK,
			"Report received!\nLocation: %s, %s\nSeverity: %s\nDetections: %d\n",
			road, area, report.Severity, report.Detections)
		return
	}

	if err := db.SetPendingReport(firestoreClient, from, pending); err != nil {
		log.Printf("ERROR saving pending report: %v", err)
		c.String(http.StatusInternalServerError, "Server error")
		return
	}

	switch {
	case pending.HasImage():
		c.String(http.StatusOK, "Image received! Please share location to complete report.")
	case pending.HasLocation():
		c.String(http.StatusOK, "Location received! Please send the pothole image.")
	default:
		c.String(http.StatusOK, "Message received.")
	}
}

// downloadMedia fetches the webhook media attachment using Twilio basic auth
// and stores it alongside web uploads.
func downloadMedia(mediaURL string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, mediaURL, nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(os.Getenv("TWILIO_ACCOUNT_SID"), os.Getenv("TWILIO_AUTH_TOKEN"))

	resp, err := mediaClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("media download returned status %s", resp.Status)
	}

	if err := os.MkdirAll(uploadFolder, 0o755); err != nil {
		return "", err
	}

	imagePath := filepath.Join(uploadFolder, fmt.Sprintf("whatsapp_%s.jpg", uuid.NewString()))
	file, err := os.Create(imagePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		return "", err
	}
	return imagePath, nil
}
