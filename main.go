package main

import "github.com/ValentinKolb/kvlock/cmd"

func main() {
	cmd.Execute()
}
