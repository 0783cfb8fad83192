package main

import "github.com/deploymenttheory/go-appledouble/cmd"

func main() {
	cmd.Execute()
}
