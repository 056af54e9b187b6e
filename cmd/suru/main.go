package main

import (
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/suru-lang/suru/internal/config"
	"github.com/suru-lang/suru/internal/maincmd"
)

var (
	// placeholder values, replaced on build
	version   = "{v}" // must be N.N[.N]
	buildDate = "{d}" // must be YYYY-mm-DD
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "suru: invalid configuration: %s\n", err)
		os.Exit(1)
	}

	c := maincmd.Cmd{BuildVersion: version, BuildDate: buildDate, Config: cfg}
	os.Exit(int(c.Main(os.Args, mainer.CurrentStdio())))
}
