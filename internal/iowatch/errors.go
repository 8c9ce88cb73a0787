package iowatch

import (
	"fmt"

	"github.com/g3zod/CreateADIFTestFiles/pkg/errcode"
	"github.com/gnames/gn"
)

// WatchError creates an error for inputs that cannot be watched.
func WatchError(path string, err error) error {
	msg := `Cannot watch <em>%s</em> for changes

<em>How to fix:</em>
  1. Check that the directory exists
  2. Raise the inotify limit: <em>sysctl fs.inotify.max_user_watches</em>`

	return &gn.Error{
		Code: errcode.WatchError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot watch %s: %w", path, err),
	}
}
