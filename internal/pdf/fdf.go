// Package pdf fills fillable PDF forms and concatenates PDF files with pdftk.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Field is one form field value.
type Field struct {
	Name     string
	Value    string
	Checkbox bool
	Checked  bool
}

// Text returns a text field.
func Text(name, value string) Field {
	return Field{Name: name, Value: value}
}

// Check returns a checkbox field.
func Check(name string, checked bool) Field {
	return Field{Name: name, Checkbox: true, Checked: checked}
}

var pdfStringEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`, "\r", `\r`)

var utf16Encoder = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)

// pdfString encodes s as a PDF literal string, or as a UTF-16BE hex string
// when s contains non-ASCII characters.
func pdfString(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			encoded, err := utf16Encoder.NewEncoder().String(s)
			if err != nil {
				break
			}
			return fmt.Sprintf("<%X>", encoded)
		}
	}
	return "(" + pdfStringEscaper.Replace(s) + ")"
}

// FDF encodes fields as a Forms Data Format document suitable for
// "pdftk fill_form".
//
// Postcondition: checkboxes are written as /Yes or /Off names; text values
// are escaped PDF strings.
func FDF(fields []Field) []byte {
	var buf bytes.Buffer
	buf.WriteString("%FDF-1.2\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<< /FDF << /Fields [\n")
	for _, f := range fields {
		value := pdfString(f.Value)
		if f.Checkbox {
			value = "/Off"
			if f.Checked {
				value = "/Yes"
			}
		}
		fmt.Fprintf(&buf, "<< /T %s /V %s >>\n", pdfString(f.Name), value)
	}
	buf.WriteString("] >> >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")
	return buf.Bytes()
}
