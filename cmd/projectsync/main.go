package main

import "github.com/jrsteele09/project-sync-web/cmd/projectsync/cmd"

func main() {
	cmd.Execute()
}
