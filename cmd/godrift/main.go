package main

import "github.com/dbsmedya/godrift/cmd/godrift/cmd"

func main() {
	cmd.Execute()
}
