package cmd

import (
	"strconv"

	pkgerrors "github.com/justin0804nitsuj/memo/pkg/errors"
)

// parseID converts a command-line record id.
func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 0)
	if err != nil || id == 0 {
		return 0, pkgerrors.NewValidationError("id", s, "must be a positive integer")
	}
	return uint(id), nil
}

func parseIDs(args []string) ([]uint, error) {
	ids := make([]uint, 0, len(args))
	for _, a := range args {
		id, err := parseID(a)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
