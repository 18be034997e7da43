package main

import "maintenance-manager/cmd"

func main() {
	cmd.Execute()
}
