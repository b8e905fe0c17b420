package main

import "github.com/josephgoksu/TaskGraph/cmd"

func main() {
	cmd.Execute()
}
