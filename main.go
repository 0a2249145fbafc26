package main

import "github.com/kubev2v/resort-catalog/cmd"

func main() {
	cmd.Execute()
}
