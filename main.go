package main

import "frametrim/cmd"

func main() {
	cmd.Execute()
}
