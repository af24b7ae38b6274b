package main

import "github.com/inkwell-mail/letterpress/cmd"

func main() {
	cmd.Execute()
}
