package main

import (
	"os"

	"github.com/eq-toolbox/eq-toolbox/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
