package main

import (
	"github.com/axellelanca/surl/cmd"
	_ "github.com/axellelanca/surl/cmd/cli"
	_ "github.com/axellelanca/surl/cmd/server"
)

func main() {
	cmd.Execute()
}
