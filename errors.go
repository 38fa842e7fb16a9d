package displaylist

import (
	"errors"
	"strings"
)

// Sentinel errors for contract violations.
var (
	// ErrFinalized is reported when a list is mutated after Finalize.
	ErrFinalized = errors.New("displaylist: list already finalized")

	// ErrNotFinalized is reported when a finalized-only query runs early.
	ErrNotFinalized = errors.New("displaylist: list not finalized")

	// ErrRemoveLast is reported when RemoveLast is not allowed.
	ErrRemoveLast = errors.New("displaylist: cannot remove last item")

	// ErrNilOp is reported when a nil operation is appended.
	ErrNilOp = errors.New("displaylist: nil paint op")
)

// ContractError is a programmer error detected by a List. In strict mode
// the List panics with it; in lenient mode the offending call is ignored
// and the error is kept for inspection.
type ContractError struct {
	Op  string
	Err error
}

func (e *ContractError) Error() string {
	return "displaylist: " + e.Op + ": " + strings.TrimPrefix(e.Err.Error(), "displaylist: ")
}

func (e *ContractError) Unwrap() error {
	return e.Err
}
