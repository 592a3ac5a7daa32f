package main

import (
	"fmt"
	"os"
)

// logger enables progress messages on STDERR when true
type logger bool

func (l logger) Logf(format string, a ...interface{}) {
	if l {
		fmt.Fprintf(os.Stderr, "impurity: "+format+"\n", a...)
	}
}
