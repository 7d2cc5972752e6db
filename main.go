package main

import "brandstock/cmd"

func main() {
	cmd.Execute()
}
