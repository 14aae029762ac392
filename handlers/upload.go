package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dhanu742005-ai/pothole-app/processor"
)

const uploadFolder = "/tmp/uploads"

// UploadReportHandler accepts a multipart image upload with optional browser
// GPS coordinates and runs it through the report pipeline.
func UploadReportHandler(c *gin.Context, firestoreClient *firestore.Client) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file part"})
		return
	}

	if err := os.MkdirAll(uploadFolder, 0o755); err != nil {
		log.Printf("Error creating upload folder: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
		return
	}

	filename := fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(file.Filename))
	imagePath := filepath.Join(uploadFolder, filename)
	if err := c.SaveUploadedFile(file, imagePath); err != nil {
		log.Printf("Error saving uploaded file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
		return
	}

	report, err := processor.ProcessReport(
		firestoreClient,
		imagePath,
		c.PostForm("latitude"),
		c.PostForm("longitude"),
		"web",
	)
	if err != nil {
		log.Printf("Error processing uploaded report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"filename":     report.Filename,
		"detections":   report.Detections,
		"severity":     report.Severity,
		"status":       report.Status,
		"road":         report.Road,
		"area":         report.Area,
		"full_address": report.FullAddress,
	})
}
