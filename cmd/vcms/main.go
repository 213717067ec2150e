package main

import (
	"os"

	"github.com/GriffinCanCode/vcms/cmd/vcms/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
