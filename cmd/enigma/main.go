// enigma simulates the German rotor cipher machines: Enigma I, M3 and M4,
// plus any machine described in a catalog file.
//
// Usage:
//
//	enigma encipher --rotors "I II III" --positions ADU HELLOWORLD
//	enigma models [name]
//	enigma sheet save|show|list|delete
//	enigma batch -f jobs.yaml [--parallel N]
//	enigma validate FILE...
//	enigma serve
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
