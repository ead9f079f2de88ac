package main

import (
	"movie-review/cmd"

	_ "go.uber.org/automaxprocs"
)

func main() {
	cmd.Execute()
}
