package main

import "github.com/plantops/replan/pkg/interfaces/cli"

func main() {
	cli.Execute()
}
