package main

import "filevault/cmd"

func main() {
	cmd.Execute()
}
