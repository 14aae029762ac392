// Package mlmodel calls the external pothole-detection inference service.
// The service takes an image and returns only the number of detected
// potholes; severity derivation from that count lives in the types package.
package mlmodel

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

type detectionResponse struct {
	Detections int `json:"detections"`
}

// CallModel uploads the image at imagePath to the inference service and
// returns the detection count. The service URL comes from ML_MODEL_URL;
// callers treat any error as zero detections.
func CallModel(imagePath string) (int, error) {
	modelURL := os.Getenv("ML_MODEL_URL")
	if modelURL == "" {
		return 0, errors.New("ML_MODEL_URL environment variable not set")
	}

	file, err := os.Open(imagePath)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filepath.Base(imagePath))
	if err != nil {
		return 0, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return 0, err
	}
	if err := writer.Close(); err != nil {
		return 0, err
	}

	req, err := http.NewRequest(http.MethodPost, modelURL, &body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, errors.New("ML model returned status: " + resp.Status)
	}

	var decoded detectionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, err
	}

	return decoded.Detections, nil
}
