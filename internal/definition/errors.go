package definition

import "fmt"

// ValidationError reports a request field that is missing or of the
// wrong shape. It never reaches the engine.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("definition: invalid request: %s %s", e.Field, e.Reason)
}

// MissingIndexError reports that the index artifact is absent and the
// request carried no source_dir to build one from.
type MissingIndexError struct {
	IndexPath string
}

func (e *MissingIndexError) Error() string {
	return fmt.Sprintf("definition: no index found at %s and no source_dir provided to build one; pass source_dir or run the index build first", e.IndexPath)
}
