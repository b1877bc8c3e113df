package main

import "github.com/panelctl/panelctl/cmd/panelctl"

func main() {
	panelctl.Execute()
}
