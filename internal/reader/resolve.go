package reader

import (
	"fmt"

	"github.com/joshuapare/classkit/pkg/types"
)

// resolveClassName follows this_class -> Class -> name_index -> Utf8. The
// chain has a fixed depth, so no cycle detection is needed, but every
// index is bounds-checked before it is dereferenced.
func resolveClassName(pool *types.ConstantPool, thisClass uint16) (string, error) {
	e, err := pool.Lookup(thisClass, -1)
	if err != nil {
		return "", err
	}
	class, ok := e.(types.Class)
	if !ok {
		return "", types.InvalidConstantReference(thisClass, -1,
			fmt.Sprintf("this_class names a %s constant, want Class", e.Tag()))
	}

	classSlot := int(thisClass) - 1
	ne, err := pool.Lookup(class.NameIndex, classSlot)
	if err != nil {
		return "", err
	}
	name, ok := ne.(types.Utf8)
	if !ok {
		return "", types.InvalidConstantReference(class.NameIndex, classSlot,
			fmt.Sprintf("Class name_index names a %s constant, want Utf8", ne.Tag()))
	}
	return name.Value, nil
}
