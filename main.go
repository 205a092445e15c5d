package main

import (
	"fmt"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; RESTO2026_* variables may come from the real environment
	_ = godotenv.Load()

	root, err := boa.NewCmdT[boa.NoParams]("resto2026").
		WithShort("EUR/BGN change calculator").
		WithLong("Calculates the change still owed to a customer who pays and is paid back in a mix of euro and leva, at the fixed rate 1€ = 1.95583лв.").
		WithSubCmds(
			tuiCmd(),
			calcCmd(),
			replayCmd(),
			initConfigCmd(),
		).
		ToCobraE()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	root.SilenceErrors = true
	root.SilenceUsage = true

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
