package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Setlist errors
	ErrTitleRequired = fmt.Errorf("title is required")
	ErrSongNotFound  = fmt.Errorf("song not found")
	ErrDuplicateUID  = fmt.Errorf("duplicate song uid")
	ErrInvalidColumn = fmt.Errorf("invalid column")
	ErrInvalidSort   = fmt.Errorf("invalid sort")

	// Storage errors
	ErrSnapshotNotFound = fmt.Errorf("snapshot not found")
	ErrStorageFailed    = fmt.Errorf("storage operation failed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
