package main

import (
	"os"

	"github.com/xketsu/weather-app/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
