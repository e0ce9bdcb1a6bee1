package main

import (
	"log"

	"github.com/bratMaciek/Yacht-Port-Simulation/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
