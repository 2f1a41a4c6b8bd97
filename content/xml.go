package content

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Node is a schema-less XML element tree.
type Node struct {
	Name     string
	Attr     map[string]string
	Children []*Node
	Text     string
}

func parseXML(raw []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))

	var root *Node
	stack := make([]*Node, 0)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{
				Name: t.Name.Local,
				Attr: make(map[string]string, len(t.Attr)),
			}
			for _, a := range t.Attr {
				node.Attr[a.Name.Local] = a.Value
			}

			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("multiple root elements")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}

			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, errors.New("unbalanced end element")
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += strings.TrimSpace(string(t))
			}
		}
	}

	if root == nil || len(stack) > 0 {
		return nil, errors.New("document has no complete root element")
	}

	return root, nil
}
