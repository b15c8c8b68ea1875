package main

import "github.com/deploymenttheory/go-fang/cmd"

func main() {
	cmd.Execute()
}
