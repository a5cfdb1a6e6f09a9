package graph

import "github.com/flowruntime/fbp/ferrors"

// These aliases let callers outside this package catch graph-specific
// failures without importing ferrors directly, while keeping a single
// definition of each error kind in [ferrors].
type (
	ValidationError = ferrors.GraphValidationError
	ConnectionError = ferrors.ConnectionError
)
