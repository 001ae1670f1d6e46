package printer

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("printer: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// printJSON prints the document as indented JSON.
func (p *Printer) printJSON(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}

// printCBOR writes the document as a single canonical CBOR item.
func (p *Printer) printCBOR(doc document) error {
	data, err := cborEncMode.Marshal(doc)
	if err != nil {
		return fmt.Errorf("printer: marshal cbor: %w", err)
	}
	_, err = p.writer.Write(data)
	return err
}
