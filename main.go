package main

import "extension-host/cmd"

func main() {
	cmd.Execute()
}
