package main

import "github.com/naka-gawa/readme-bot/cmd"

func main() {
	cmd.Execute()
}
