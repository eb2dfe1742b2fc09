package elasticsearch

import "errors"

// Sentinel errors for failures detected before or instead of a transport
// round-trip. Callers match them with errors.Is. Transport and store errors
// that are not covered here propagate wrapped, except not-found on get
// (an absent result, not an error) and any failure on update (swallowed
// into the boolean return).
var (
	// ErrInvalidArgument: Establish was called without a host or port.
	ErrInvalidArgument = errors.New("elasticsearch: host and port are required")

	// ErrInvalidIndexName: the collection name fails the naming rule.
	ErrInvalidIndexName = errors.New("elasticsearch: invalid index name")

	// ErrWriteFailed: the store answered a create/delete with an
	// unexpected result or status.
	ErrWriteFailed = errors.New("elasticsearch: write failed")
)

// connectErrPrefix is a contract: callers and tests match connection
// failures from Establish by this exact message prefix.
const connectErrPrefix = "Cannot establish elasticsearch connection: "
