package main

import (
	"errors"
	"os"

	"github.com/jesuansito/pymatgen-db/cmd/mgvv/cmd"
	"github.com/jesuansito/pymatgen-db/internal/types"
)

func main() {
	err := cmd.Execute()
	switch {
	case err == nil:
	case errors.Is(err, types.ErrEmptyReport):
		// Nothing to report is still an abnormal outcome
		os.Exit(1)
	default:
		os.Exit(2)
	}
}
