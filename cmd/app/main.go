package main

import (
	"os"

	"sidewalksafe/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
