package mock

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/devicelab-dev/pageobject/pkg/core"
)

// ParseSource builds a tree from a WDA page source (GET /source) capture.
// Element names or the "type" attribute give the kind; "name" is the
// accessibility identifier; "visible" and "hittable" drive hittability.
// The returned node is the root of the hierarchy (usually the Application element).
func ParseSource(xmlData string) (*Node, error) {
	decoder := xml.NewDecoder(strings.NewReader(xmlData))

	var parseElement func(start xml.StartElement) (*Node, error)
	parseElement = func(start xml.StartElement) (*Node, error) {
		n := nodeFromStart(start)
		for {
			token, err := decoder.Token()
			if err != nil {
				return nil, fmt.Errorf("unterminated <%s>: %w", start.Name.Local, err)
			}
			switch t := token.(type) {
			case xml.StartElement:
				child, err := parseElement(t)
				if err != nil {
					return nil, err
				}
				n.Add(child)
			case xml.EndElement:
				return n, nil
			}
		}
	}

	var roots []*Node
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		// Appium wraps the hierarchy in an AppiumAUT element.
		if start.Name.Local == "AppiumAUT" {
			continue
		}
		root, err := parseElement(start)
		if err != nil {
			return nil, err
		}
		roots = append(roots, root)
	}

	switch len(roots) {
	case 0:
		return nil, fmt.Errorf("no elements found in page source")
	case 1:
		return roots[0], nil
	default:
		wrapper := NewNode(core.TypeOther, "")
		return wrapper.Add(roots...), nil
	}
}

func nodeFromStart(t xml.StartElement) *Node {
	n := NewNode(core.ParseXCUIType(t.Name.Local), "")
	n.Bounds = core.Bounds{}
	visible, hittable := true, true
	hittableSet := false

	for _, attr := range t.Attr {
		switch attr.Name.Local {
		case "type":
			n.Type = core.ParseXCUIType(attr.Value)
		case "name":
			n.Identifier = attr.Value
		case "label":
			n.Label = attr.Value
		case "value":
			n.Value = attr.Value
			n.HasValue = true
		case "placeholderValue":
			n.PlaceholderValue = attr.Value
		case "visible":
			visible = attr.Value == "true"
		case "hittable":
			hittable = attr.Value == "true"
			hittableSet = true
		case "x":
			n.Bounds.X = atoi(attr.Value)
		case "y":
			n.Bounds.Y = atoi(attr.Value)
		case "width":
			n.Bounds.Width = atoi(attr.Value)
		case "height":
			n.Bounds.Height = atoi(attr.Value)
		}
	}

	if hittableSet {
		n.Hittable = hittable
	} else {
		n.Hittable = visible
	}
	return n
}

func atoi(s string) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// LoadSource replaces the app's tree with a parsed page source capture.
func (a *App) LoadSource(xmlData string) error {
	root, err := ParseSource(xmlData)
	if err != nil {
		return err
	}
	a.SetRoot(root)
	return nil
}
