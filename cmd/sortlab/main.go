package main

import "github.com/mvoloshin/sortlab/cmd/sortlab/cmd"

func main() {
	cmd.Execute()
}
