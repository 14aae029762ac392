package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const pendingCollection = "pending_reports"

// PendingReport is the half-finished state of a messaging-channel report: a
// sender may deliver the image and the location in separate messages, in
// either order. Keyed by the hashed sender number.
type PendingReport struct {
	ImagePath string `firestore:"image_path,omitempty"`
	Latitude  string `firestore:"latitude,omitempty"`
	Longitude string `firestore:"longitude,omitempty"`
}

// HasImage reports whether the image half has arrived.
func (p *PendingReport) HasImage() bool {
	return p.ImagePath != ""
}

// HasLocation reports whether the location half has arrived.
func (p *PendingReport) HasLocation() bool {
	return p.Latitude != "" && p.Longitude != ""
}

// GetPendingReport fetches the pending state for a sender. A missing document
// yields an empty state, not an error.
func GetPendingReport(client *firestore.Client, from string) (PendingReport, error) {
	ctx := context.Background()
	var pending PendingReport

	docSnap, err := client.Collection(pendingCollection).Doc(HashString(from)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return pending, nil
		}
		return pending, fmt.Errorf("error getting pending report for sender: %w", err)
	}

	if err := docSnap.DataTo(&pending); err != nil {
		return PendingReport{}, fmt.Errorf("error converting pending report: %w", err)
	}
	return pending, nil
}

// SetPendingReport saves partial state back for a sender.
func SetPendingReport(client *firestore.Client, from string, pending PendingReport) error {
	ctx := context.Background()
	_, err := client.Collection(pendingCollection).Doc(HashString(from)).Set(ctx, pending)
	if err != nil {
		return fmt.Errorf("error saving pending report: %w", err)
	}
	return nil
}

// DeletePendingReport clears a sender's pending state after the report has
// been fully processed.
func DeletePendingReport(client *firestore.Client, from string) error {
	ctx := context.Background()
	_, err := client.Collection(pendingCollection).Doc(HashString(from)).Delete(ctx)
	if err != nil {
		return fmt.Errorf("error deleting pending report: %w", err)
	}
	return nil
}
