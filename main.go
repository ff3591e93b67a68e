package main

import "github.com/lepinkainen/holocron/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
