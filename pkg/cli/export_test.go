package cli

import "github.com/m-mizutani/fireconf"

var (
	ReadSnapshots = readSnapshots
	NewFilter     = newFilter
)

// DefineFirestoreIndexes exposes defineFirestoreIndexes for testing
func DefineFirestoreIndexes() *fireconf.Config {
	return defineFirestoreIndexes()
}
