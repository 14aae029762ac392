package db

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dhanu742005-ai/pothole-app/types"
)

const clusterStatusCollection = "cluster_status"

type clusterStatusDoc struct {
	Status    types.ClusterStatus `firestore:"status"`
	UpdatedAt string              `firestore:"updated_at"`
}

// GetClusterStatus returns the persisted workflow status for a cluster ID.
// A cluster that was never touched defaults to Open.
func GetClusterStatus(client *firestore.Client, clusterID string) (types.ClusterStatus, error) {
	ctx := context.Background()

	docSnap, err := client.Collection(clusterStatusCollection).Doc(clusterID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.StatusOpen, nil
		}
		return types.StatusOpen, fmt.Errorf("error getting cluster status %s: %w", clusterID, err)
	}

	var doc clusterStatusDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return types.StatusOpen, fmt.Errorf("error converting cluster status %s: %w", clusterID, err)
	}
	if doc.Status == "" {
		return types.StatusOpen, nil
	}
	return doc.Status, nil
}

// SetClusterStatus persists a workflow status for a cluster ID with an update
// timestamp. Validation of the status value happens at the handler boundary.
func SetClusterStatus(client *firestore.Client, clusterID string, newStatus types.ClusterStatus) error {
	ctx := context.Background()

	_, err := client.Collection(clusterStatusCollection).Doc(clusterID).Set(ctx, clusterStatusDoc{
		Status:    newStatus,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("error setting cluster status %s: %w", clusterID, err)
	}
	return nil
}
