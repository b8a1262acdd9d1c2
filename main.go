package main

import (
	"log"

	"github.com/hireon/hireon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
