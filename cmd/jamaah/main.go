// Command jamaah runs the masjid back-office: the admin HTTP API plus
// maintenance commands for seeding, statistics, listing, and snapshots.
package main

import (
	"os"
)

var exitFunc = os.Exit

func main() {
	root, e := newRootCmd()
	if err := runRoot(root, e); err != nil {
		exitFunc(1)
	}
}
