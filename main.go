package main

import (
	"github.com/socialcraft/content-agent/cmd"
)

func main() {
	cmd.Execute()
}
