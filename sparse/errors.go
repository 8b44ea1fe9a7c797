package sparse

import "github.com/pkg/errors"

// InvalidPageTableError is the error returned from Validate when a page table's internal structure
// is inconsistent
var InvalidPageTableError error = errors.New("page table is invalid")

// UnclaimedBytesError is logged when a range update is given more bytes than remain in the resource
var UnclaimedBytesError error = errors.New("unclaimed bytes being assigned to resource after iterating over all subresources")
