package main

import "github.com/devicelab-dev/pageobject/pkg/cli"

func main() {
	cli.Execute()
}
