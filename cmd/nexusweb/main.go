// Command nexusweb serves the Nexus landing page and relays sign-in,
// sign-up and roadmap requests to the roadmap backend.
package main

import (
	"github.com/patric-chuzhbe/nexusweb/internal/app"
)

func main() {
	theApp, err := app.New()
	if err != nil {
		panic(err)
	}
	defer theApp.Close()

	if err := theApp.Run(); err != nil {
		panic(err)
	}
}
