package main

import (
	"marmer/internal/cmd"
)

func main() {
	cmd.Run()
}
