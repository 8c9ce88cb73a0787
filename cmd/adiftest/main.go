// Package main provides the adiftest CLI application.
// adiftest creates and checks ADIF test QSO files.
package main

import "github.com/g3zod/CreateADIFTestFiles/cmd"

func main() {
	cmd.Execute()
}
