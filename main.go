// Command lazyshop browses a phone catalog in the terminal, narrowing it with
// brand, storage, RAM and price filters. Wide terminals get a filter panel;
// narrow ones get a sheet opened with f.
//
// Settings live in ~/.lazyshop/config.yaml. Without a catalog path the
// built-in sample catalog is shown.
package main

import (
	"fmt"
	"os"

	"github.com/marjoballabani/lazyshop/pkg/app"
)

// set with -ldflags "-X main.version=..."
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v":
			fmt.Printf("lazyshop %s (%s, %s)\n", version, commit, date)
			return
		}
	}

	a, err := app.NewApp(&app.BuildInfo{Version: version, Commit: commit, Date: date})
	if err == nil {
		err = a.Run()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "lazyshop: %v\n", err)
		os.Exit(1)
	}
}
