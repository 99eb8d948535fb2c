package ports

import "errors"

// ErrNotFound is returned by repositories when the requested entity does
// not exist. Services translate it into their own error taxonomy.
var ErrNotFound = errors.New("not found")
