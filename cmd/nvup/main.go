package main

import (
	"log"
	"os"

	"github.com/NVIDIA/driver-update/pkg/cli"
)

func main() {
	if err := cli.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
