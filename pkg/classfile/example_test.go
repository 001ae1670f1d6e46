package classfile_test

import (
	"errors"
	"fmt"

	"github.com/joshuapare/classkit/internal/testutil"
	"github.com/joshuapare/classkit/pkg/classfile"
	"github.com/joshuapare/classkit/pkg/types"
)

// ExampleDecode decodes a class file and prints its registry signature.
func ExampleDecode() {
	buf := testutil.Minimal("com/example/Service")

	cf, err := classfile.Decode(buf, nil)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer cf.Close()

	fmt.Println(cf.Name)
	fmt.Println(cf.Signature())
	fmt.Println(cf.AccessFlags)
	// Output:
	// com/example/Service
	// Lcom/example/Service;
	// ACC_PUBLIC, ACC_SUPER
}

// ExampleDecode_errors shows how to branch on the error kind.
func ExampleDecode_errors() {
	_, err := classfile.Decode([]byte{0xCA, 0xFE, 0xBA, 0xBE, 0x00}, nil)
	if errors.Is(err, types.ErrTruncated) {
		fmt.Println("truncated:", err)
	}
	// Output:
	// truncated: truncated input reading minor_version at offset 4: need 2 bytes, have 1: format: truncated buffer
}
