package main

import (
	"github.com/hooktrail/hooktrail/cmd"
)

func main() {
	cmd.Execute()
}
