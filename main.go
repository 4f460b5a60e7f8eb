package main

import "github.com/khrees2412/takecare-ats/cmd"

func main() {
	cmd.Execute()
}
