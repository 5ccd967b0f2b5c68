package main

import (
	"log"

	"github.com/dnzbykshn/career-responder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
