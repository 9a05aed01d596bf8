package main

import (
	"github.com/calebcase/pgcopy/cmd/pgcopy/cmd"
)

func main() {
	cmd.Execute()
}
