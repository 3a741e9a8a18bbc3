package kmeans

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidCluster is returned when a pre-built cluster collection contains nil.
	ErrInvalidCluster = errors.New("invalid cluster")

	// ErrInvalidDimension is returned when a dimension list contains nil.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrNoClusters is returned by Initialize when there are no clusters.
	ErrNoClusters = errors.New("no clusters")

	// ErrNoDimensions is returned by Initialize when there are no dimensions.
	ErrNoDimensions = errors.New("no dimensions")

	// ErrNoData is returned by Initialize when no valid data point survived ingestion.
	ErrNoData = errors.New("no data points")

	// ErrNoMean is returned when a cluster mean is required but unset.
	ErrNoMean = errors.New("cluster has no mean")

	// ErrMissingDimension is returned when a point lacks a value for a dimension handle.
	ErrMissingDimension = errors.New("missing dimension")

	// ErrNonFiniteValue is returned when a dimension value is NaN or infinite.
	ErrNonFiniteValue = errors.New("non-finite value")

	// ErrNotInitialized is returned by Solve before a successful Initialize.
	ErrNotInitialized = errors.New("kmeans not initialized")

	// ErrInvalidState is returned for lifecycle calls made in the wrong state.
	ErrInvalidState = errors.New("invalid state")

	// ErrMaxIterations is returned when Solve hits the configured iteration cap.
	ErrMaxIterations = errors.New("maximum iterations reached without convergence")

	// ErrInvalidInitMethod is returned for an unknown or inapplicable init method.
	ErrInvalidInitMethod = errors.New("invalid init method")

	// ErrMalformedRecord marks an input record dropped during ingestion.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrNoNearestCluster is returned when no cluster lies at a finite distance.
	ErrNoNearestCluster = errors.New("no cluster at finite distance")
)

// DimensionError reports which point and which dimension failed validation.
//
// Reason is ErrMissingDimension or ErrNonFiniteValue and is reachable via
// errors.Is.
type DimensionError struct {
	Point     string
	Dimension string
	Reason    error
}

func (e *DimensionError) Error() string {
	if e.Point == "" {
		return fmt.Sprintf("dimension %q: %v", e.Dimension, e.Reason)
	}
	return fmt.Sprintf("point %q, dimension %q: %v", e.Point, e.Dimension, e.Reason)
}

func (e *DimensionError) Unwrap() error { return e.Reason }

// StateError reports a lifecycle call made in the wrong state.
type StateError struct {
	Op    string
	State State
	cause error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %v (state %s)", e.Op, e.cause, e.State)
}

func (e *StateError) Unwrap() error { return e.cause }

// RecordError describes an input record dropped during ingestion.
type RecordError struct {
	Index int
	Name  string
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d (%s): %v", e.Index, e.Name, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
