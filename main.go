package main

import "github.com/mohspitality/hospitality-management/cmd"

func main() {
	cmd.Execute()
}
