// Package version carries the build metadata stamped into the js-parser CLI.
package version

import "fmt"

const (
	VERSION = "0.1.0"
	COMMIT  = "dev"
)

func Version() string {
	return fmt.Sprintf("js-parser %s (%s)", VERSION, COMMIT)
}
