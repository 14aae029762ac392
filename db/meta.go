package db

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	metaCollection     = "dashboard_meta"
	segmentsSummaryDoc = "bad_segments_summary"
)

type summaryDoc struct {
	Summary   string `firestore:"summary"`
	UpdatedAt string `firestore:"updated_at"`
}

// SaveSegmentsSummary persists the generated natural-language summary of the
// current bad-segment set for dashboard display.
func SaveSegmentsSummary(client *firestore.Client, summary string) error {
	ctx := context.Background()
	_, err := client.Collection(metaCollection).Doc(segmentsSummaryDoc).Set(ctx, summaryDoc{
		Summary:   summary,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("error saving segments summary: %w", err)
	}
	return nil
}

// GetSegmentsSummary returns the last stored summary, or empty when none has
// been generated yet.
func GetSegmentsSummary(client *firestore.Client) (string, error) {
	ctx := context.Background()

	docSnap, err := client.Collection(metaCollection).Doc(segmentsSummaryDoc).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", nil
		}
		return "", fmt.Errorf("error getting segments summary: %w", err)
	}

	var doc summaryDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return "", fmt.Errorf("error converting segments summary: %w", err)
	}
	return doc.Summary, nil
}
