package main

import (
	"log"
	"os"
)

func run() error {
	return nil
}

func helper() {
	os.Exit(3)
}

func main() {
	defer func() {}()

	if err := run(); err != nil {
		log.Fatalf("run: %v", err) // want "avoid using log.Fatalf in main.main: deferred cleanup will not run"
	}
	if len(os.Args) > 5 {
		log.Fatal("too many arguments") // want "avoid using log.Fatal in main.main: deferred cleanup will not run"
	}
	helper()
	os.Exit(1) // want "avoid using os.Exit in main.main: deferred cleanup will not run"
}
