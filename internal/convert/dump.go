package convert

import "github.com/davecgh/go-spew/spew"

var spewConfig = &spew.ConfigState{
	Indent:                  "  ",
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

// Dump renders parsed structures for debug logging.
func Dump(a ...interface{}) string {
	return spewConfig.Sdump(a...)
}
