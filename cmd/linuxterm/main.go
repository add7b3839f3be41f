package main

import (
	"github.com/Lesliedc339/linux-terminal/cmd/cli"
)

func main() {
	cli.Execute()
}
