package main

import (
	"prospects/cmd/prospects/cmd"
)

func main() {
	cmd.Execute()
}
