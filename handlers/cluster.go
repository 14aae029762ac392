package handlers

import (
	"log"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"github.com/dhanu742005-ai/pothole-app/db"
	"github.com/dhanu742005-ai/pothole-app/types"
)

// UpdateClusterStatusHandler persists a workflow status change for a cluster.
// The cluster itself is transient; the status is keyed by the deterministic
// cluster ID so it reattaches after every recomputation.
func UpdateClusterStatusHandler(c *gin.Context, firestoreClient *firestore.Client) {
	clusterID := c.PostForm("cluster_id")
	newStatus := types.ClusterStatus(c.PostForm("status"))

	if clusterID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cluster_id required"})
		return
	}
	if !newStatus.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	if err := db.SetClusterStatus(firestoreClient, clusterID, newStatus); err != nil {
		log.Printf("ERROR updating cluster status %s: %v", clusterID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cluster status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cluster_id": clusterID,
		"status":     newStatus,
	})
}
