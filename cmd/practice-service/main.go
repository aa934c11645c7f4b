package main

import (
	"os"

	"github.com/bloomworks/bloom-practice/practiceservice"
)

func main() {
	if err := practiceservice.Run(); err != nil {
		os.Exit(1)
	}
}
