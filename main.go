package main

import "github.com/DrW3RK/parachain-node/cmd"

func main() {
	cmd.Execute()
}
