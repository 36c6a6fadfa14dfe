package main

import "github.com/mchmarny/kappa/pkg/cli"

func main() {
	cli.Execute()
}
