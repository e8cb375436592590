package main

import "jdex/cmd"

func main() {
	cmd.Execute()
}
