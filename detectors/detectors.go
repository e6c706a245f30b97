// Package detectors holds the static reference table of static-analysis
// detector names enabled for contract audits in this repository.
package detectors

import "sort"

// names is the canonical detector list. Kept sorted; All relies on it.
var names = []string{
	"arbitrary-send-erc20",
	"arbitrary-send-eth",
	"controlled-delegatecall",
	"divide-before-multiply",
	"incorrect-equality",
	"locked-ether",
	"missing-zero-check",
	"reentrancy-benign",
	"reentrancy-eth",
	"reentrancy-events",
	"reentrancy-no-eth",
	"suicidal",
	"timestamp",
	"tx-origin",
	"uninitialized-state",
	"uninitialized-storage",
	"unprotected-upgrade",
	"unused-return",
}

// All returns a copy of the detector name table, sorted.
func All() []string {
	out := make([]string, len(names))
	copy(out, names)

	return out
}

// IsKnown reports whether name is in the detector table.
func IsKnown(name string) bool {
	i := sort.SearchStrings(names, name)

	return i < len(names) && names[i] == name
}
