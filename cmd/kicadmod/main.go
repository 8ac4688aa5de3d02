package main

import "github.com/kornpow/kicad-lib-parse/cmd/kicadmod/cmd"

func main() {
	cmd.Execute()
}
