package main

import "itinctl/cmd"

func main() {
	cmd.Execute()
}
