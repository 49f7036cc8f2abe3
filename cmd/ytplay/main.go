package main

import "github.com/tessro/ytplay/internal/cli"

func main() {
	cli.Execute()
}
