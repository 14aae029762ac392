package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/dhanu742005-ai/pothole-app/types"
)

const reportsCollection = "pothole_reports"

// SaveReport adds a new report and returns the store-assigned document ID.
func SaveReport(client *firestore.Client, report types.Report) (string, error) {
	ctx := context.Background()

	docRef, _, err := client.Collection(reportsCollection).Add(ctx, report)
	if err != nil {
		return "", fmt.Errorf("error saving report: %w", err)
	}

	log.Printf("Saved report %s (severity %s, source %s)", docRef.ID, report.Severity, report.Source)
	return docRef.ID, nil
}

// GetAllReports retrieves the full pothole_reports collection. No filtering
// is pushed down; all filtering happens in memory at the call site.
func GetAllReports(client *firestore.Client) ([]types.Report, error) {
	ctx := context.Background()
	var reports []types.Report

	iter := client.Collection(reportsCollection).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating reports collection: %w", err)
		}

		var report types.Report
		if err := doc.DataTo(&report); err != nil {
			log.Printf("Warning: Error converting document %s to Report: %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		report.ID = doc.Ref.ID
		reports = append(reports, report)
	}

	return reports, nil
}
