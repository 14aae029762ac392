package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceZero(t *testing.T) {
	assert.Zero(t, Distance(12.9716, 77.5946, 12.9716, 77.5946))
}

func TestDistanceSymmetric(t *testing.T) {
	d1 := Distance(12.9716, 77.5946, 13.0827, 80.2707)
	d2 := Distance(13.0827, 80.2707, 12.9716, 77.5946)
	assert.InDelta(t, d1, d2, 1e-6)
}

func TestDistanceKnownPairs(t *testing.T) {
	// One degree of latitude is about 111.19 km on a 6371 km sphere.
	d := Distance(12.0, 77.0, 13.0, 77.0)
	assert.InDelta(t, 111195, d, 50)

	// ~100 m north of the anchor used all over the clustering tests.
	d = Distance(12.97160, 77.59460, 12.97250, 77.59460)
	assert.InDelta(t, 100, d, 1)
}

func TestDistanceShortRange(t *testing.T) {
	// Sub-meter distances stay finite and positive.
	d := Distance(12.971600, 77.594600, 12.971601, 77.594600)
	assert.Greater(t, d, 0.0)
	assert.Less(t, d, 1.0)
}
