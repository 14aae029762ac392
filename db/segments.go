package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/dhanu742005-ai/pothole-app/types"
)

const segmentsCollection = "bad_road_segments"

// ReplaceBadSegments clears the bad_road_segments collection and writes the
// newly detected set, using BulkWriter for non-transactional batching. Every
// detection run is authoritative; there is no merge with prior segments. A
// concurrent reader may transiently observe an empty or partial set, which is
// an accepted consistency window.
func ReplaceBadSegments(client *firestore.Client, segments []types.BadSegment) (int, error) {
	ctx := context.Background()
	collectionRef := client.Collection(segmentsCollection)

	// Clear existing segments first.
	bw := client.BulkWriter(ctx)
	iter := collectionRef.Documents(ctx)
	deleted := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			iter.Stop()
			return 0, fmt.Errorf("error iterating segments for deletion: %w", err)
		}
		if _, err := bw.Delete(doc.Ref); err != nil {
			log.Printf("Error enqueueing segment %s for deletion: %v", doc.Ref.ID, err)
			continue
		}
		deleted++
	}
	iter.Stop()
	bw.Flush()

	if len(segments) == 0 {
		log.Printf("Cleared %d bad segments; nothing new to save.", deleted)
		return 0, nil
	}

	// Insert the new set keyed by the deterministic segment ID.
	bw = client.BulkWriter(ctx)
	saved := 0
	for i := range segments {
		segment := segments[i]
		if segment.SegmentID == "" {
			log.Printf("Warning: Skipping segment with empty ID on %s", segment.RoadName)
			continue
		}
		if _, err := bw.Set(collectionRef.Doc(segment.SegmentID), segment); err != nil {
			log.Printf("Error enqueueing segment %s for save: %v", segment.SegmentID, err)
			continue
		}
		saved++
	}
	bw.Flush()

	log.Printf("Replaced bad segments: %d cleared, %d saved.", deleted, saved)
	return saved, nil
}

// GetAllBadSegments retrieves all persisted bad segments.
func GetAllBadSegments(client *firestore.Client) ([]types.BadSegment, error) {
	ctx := context.Background()
	var segments []types.BadSegment

	iter := client.Collection(segmentsCollection).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating segments collection: %w", err)
		}

		var segment types.BadSegment
		if err := doc.DataTo(&segment); err != nil {
			log.Printf("Warning: Error converting document %s to BadSegment: %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		segments = append(segments, segment)
	}

	return segments, nil
}
