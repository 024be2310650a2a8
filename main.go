// Public domain.

package main

import "github.com/soniakeys/transit/internal/tprog"

func main() {
	tprog.Main()
}
