package main

import (
	"sayitloud/interfaces/cli"
)

func main() {
	cli.Execute()
}
