package main

import "imagique/cmd"

func main() {
	cmd.Execute()
}
