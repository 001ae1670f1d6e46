/*
Package classfile decodes the header and constant pool of compiled class
files far enough to learn the name of the class they declare.

# Quick Start

Read the binary name of a class from disk:

	name, err := classfile.ReadName("build/com/example/Service.class")
	// name == "com/example/Service"

# Decoding Buffers

Decode takes an in-memory buffer, typically bytes delivered by a runtime
class-load hook:

	cf, err := classfile.Decode(buf, nil)
	if err != nil {
	    return err
	}
	defer cf.Close()

	fmt.Println(cf.Name, cf.Signature()) // com/example/Service Lcom/example/Service;

The returned ClassFile owns its constant pool. Close hands every constant
back to the allocator; afterwards Pool returns nil.

# Error Handling

Every failure is a *types.Error. Branch on its kind with errors.Is:

	switch {
	case errors.Is(err, types.ErrTruncated):
	    // the buffer ended early
	case errors.Is(err, types.ErrUnknownTag):
	    // a constant tag outside the known set
	case errors.Is(err, types.ErrInvalidReference):
	    // this_class or its name_index is bad
	case errors.Is(err, types.ErrAllocation):
	    // a limit refused the pool or a payload
	}

A failed decode never returns a partial result and leaves nothing to
release.

# Concurrency

Decode keeps no shared state, so independent buffers can be decoded from
many goroutines at once. DecodeAll does this for a list of paths.
*/
package classfile
