package decompiler

import "fmt"

// Displacement returns the pointer offset produced by a run of move
// symbols: +1 for every '>' and -1 for every '<'.
func Displacement(run string) int {
	n := 0
	for i := 0; i < len(run); i++ {
		switch run[i] {
		case InstMoveRight:
			n++
		case InstMoveLeft:
			n--
		}
	}
	return n
}

// Delta formats a run of '+' or '-' as the compound assignment it performs,
// e.g. "+= 3" or "-= 2".
func Delta(run string) string {
	if len(run) > 0 && run[0] == InstDecrement {
		return fmt.Sprintf("-= %d", len(run))
	}
	return fmt.Sprintf("+= %d", len(run))
}
