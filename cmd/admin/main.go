package main

import "foodshare/cmd/admin/commands"

func main() {
	commands.Execute()
}
