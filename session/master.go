package session

import (
	"fmt"
	"regexp"
	"runtime"
	"strconv"

	"github.com/hpetrov29/sifetl/errors"
)

var localMasterRegex = regexp.MustCompile(`^local(?:\[(\*|[0-9]+)\])?$`)

// parseMaster returns the number of workers described by a master string:
// "local" (one worker), "local[N]" (N workers) or "local[*]" (one per CPU)
func parseMaster(master string) (int, error) {
	m := localMasterRegex.FindStringSubmatch(master)
	if m == nil {
		return 0, &errors.ConfigError{Key: "master", Err: fmt.Errorf("%q is not a supported master, expected local, local[N] or local[*]", master)}
	}
	switch m[1] {
	case "":
		return 1, nil
	case "*":
		return runtime.GOMAXPROCS(0), nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, &errors.ConfigError{Key: "master", Err: fmt.Errorf("%q must request at least one worker", master)}
	}
	return n, nil
}
