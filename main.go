package main

import (
	"os"

	"github.com/govindrajkumar/easy-lease-sub000/cmd"
)

func main() {
	if err := cmd.New().Execute(); err != nil {
		os.Exit(1)
	}
}
