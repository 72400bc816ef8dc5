package main

import (
	"excise/cmd/excise/cmd"
)

func main() {
	cmd.Execute()
}
