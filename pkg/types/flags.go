package types

import "strings"

// AccessFlags is the access_flags field of a class file.
type AccessFlags uint16

const (
	AccPublic     AccessFlags = 0x0001
	AccFinal      AccessFlags = 0x0010
	AccSuper      AccessFlags = 0x0020
	AccInterface  AccessFlags = 0x0200
	AccAbstract   AccessFlags = 0x0400
	AccSynthetic  AccessFlags = 0x1000
	AccAnnotation AccessFlags = 0x2000
	AccEnum       AccessFlags = 0x4000
	AccModule     AccessFlags = 0x8000
)

var accessFlagNames = []struct {
	flag AccessFlags
	name string
}{
	{AccPublic, "ACC_PUBLIC"},
	{AccFinal, "ACC_FINAL"},
	{AccSuper, "ACC_SUPER"},
	{AccInterface, "ACC_INTERFACE"},
	{AccAbstract, "ACC_ABSTRACT"},
	{AccSynthetic, "ACC_SYNTHETIC"},
	{AccAnnotation, "ACC_ANNOTATION"},
	{AccEnum, "ACC_ENUM"},
	{AccModule, "ACC_MODULE"},
}

// Has reports whether every bit of flag is set.
func (f AccessFlags) Has(flag AccessFlags) bool {
	return f&flag == flag
}

// String renders the set flags as "ACC_PUBLIC, ACC_SUPER".
func (f AccessFlags) String() string {
	var names []string
	for _, n := range accessFlagNames {
		if f.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, ", ")
}
