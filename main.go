package main

import "bookshop/cmd"

func main() {
	cmd.Execute()
}
