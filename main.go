package main

import (
	"auto-reference/cmd"

	_ "auto-reference/components"
)

func main() {
	cmd.Execute()
}
