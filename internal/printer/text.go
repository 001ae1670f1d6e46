package printer

import (
	"fmt"
	"strconv"
)

// printText prints a javap-style summary:
//
//	  #1 = Utf8               java/lang/Object
//	  #6 = Methodref          #2.#5           // java/lang/Object."<init>":()V
func (p *Printer) printText(doc document) error {
	w := p.writer
	fmt.Fprintf(w, "class %s\n", doc.Name)
	fmt.Fprintf(w, "  signature: %s\n", doc.Signature)
	fmt.Fprintf(w, "  magic: 0x%08X\n", doc.Magic)
	fmt.Fprintf(w, "  minor version: %d\n", doc.MinorVersion)
	fmt.Fprintf(w, "  major version: %d\n", doc.MajorVersion)
	fmt.Fprintf(w, "  flags: (0x%04x) %s\n", doc.AccessFlags, doc.Flags)
	fmt.Fprintf(w, "  this_class: #%d\n", doc.ThisClass)
	_, err := fmt.Fprintf(w, "  constant_pool_count: %d\n", doc.PoolCount)
	if err != nil || len(doc.Constants) == 0 {
		return err
	}

	if _, err := fmt.Fprintln(w, "Constant pool:"); err != nil {
		return err
	}
	width := len(strconv.Itoa(int(doc.Constants[len(doc.Constants)-1].Index))) + 1
	for _, c := range doc.Constants {
		var err error
		if c.Comment == "" {
			_, err = fmt.Fprintf(w, "  %*s = %-18s %s\n", width, "#"+strconv.Itoa(int(c.Index)), c.Tag, c.Value)
		} else {
			_, err = fmt.Fprintf(w, "  %*s = %-18s %-15s // %s\n", width, "#"+strconv.Itoa(int(c.Index)), c.Tag, c.Value, c.Comment)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
