package jobxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// ErrUnsupportedCharset is returned when a record declares an encoding that
// cannot be decoded.
var ErrUnsupportedCharset = errors.New("unsupported charset")

// Parse builds a tree from the first root element in data.
//
// Parsing never fails on malformed markup: a syntax error or premature end of
// input stops tokenising and the tree built so far is returned, with every
// element still open treated as closed. An end tag closes the open element it
// names along with everything nested inside it; an end tag naming no open
// element closes the innermost element below the root, or is ignored when
// only the root is open. Bytes that are not UTF-8 in a record without an
// encoding declaration are read as Latin-1.
//
// Parse returns (nil, nil) when data holds no element at all; the only error
// it returns wraps ErrUnsupportedCharset.
func Parse(data []byte) (*Node, error) {
	root, declared, err := parse(data)
	if err != nil || declared || utf8.Valid(data) {
		return root, err
	}
	latin1, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return root, nil
	}
	root, _, err = parse(latin1)
	return root, err
}

// parse tokenises data once. declared reports whether the record declared a
// non UTF-8 encoding, in which case the decoder already transcoded it.
func parse(data []byte) (root *Node, declared bool, err error) {
	var charsetErr error

	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		declared = true
		enc, err := htmlindex.Get(label)
		if err != nil {
			charsetErr = fmt.Errorf("%w: %q", ErrUnsupportedCharset, label)
			return nil, charsetErr
		}
		return enc.NewDecoder().Reader(input), nil
	}

	var stack []*Node
	for {
		tok, err := dec.RawToken()
		if err != nil {
			if charsetErr != nil {
				return nil, declared, charsetErr
			}
			return root, declared, nil
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local}
			if len(stack) == 0 {
				if root != nil {
					return root, declared, nil
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			stack = closeElement(stack, t.Name.Local)
			if len(stack) == 0 {
				return root, declared, nil
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
}

// closeElement pops the innermost open element named name and everything
// above it. Without such an element it pops only the innermost element, and
// never the root.
func closeElement(stack []*Node, name string) []*Node {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].Name == name {
			return stack[:i]
		}
	}
	if len(stack) > 1 {
		return stack[:len(stack)-1]
	}
	return stack
}
