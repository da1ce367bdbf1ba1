package primitives

import (
	"github.com/Masterminds/semver/v3"
)

// SchemaVersion is the Specification schema written by this module.
const SchemaVersion = "1.0.0"

const supportedSchemas = ">= 1.0.0, < 2.0.0"

var schemaConstraint = mustConstraint(supportedSchemas)

func mustConstraint(c string) *semver.Constraints {
	cs, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return cs
}

// CheckVersion accepts an empty version (meaning SchemaVersion) or any semantic
// version within the supported schema range.
func CheckVersion(v string) error {
	if v == "" {
		return nil
	}
	ver, err := semver.NewVersion(v)
	if err != nil {
		return NewSpecError(KindVersion, v, err)
	}
	if !schemaConstraint.Check(ver) {
		return SpecErrorf(KindVersion, v, "supported versions are %s", supportedSchemas)
	}
	return nil
}
