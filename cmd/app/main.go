package main

import "postal/cmd"

func main() {
	cmd.Execute()
}
