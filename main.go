package main

import "github.com/mrosetti/btcarb/cmd"

func main() {
	cmd.Execute()
}
