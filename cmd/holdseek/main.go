package main

import "github.com/tessro/holdseek/internal/cli"

func main() {
	cli.Execute()
}
