package main

import (
	"fmt"
	"os"

	"askd/internal/askctl"
)

func main() {
	if err := askctl.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "askctl:", err)
		os.Exit(1)
	}
}
