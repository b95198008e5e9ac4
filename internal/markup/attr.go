package markup

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
)

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	n.Attr = slices.DeleteFunc(n.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == key
	})
}

func hasClass(n *html.Node, class string) bool {
	return slices.Contains(strings.Fields(attr(n, "class")), class)
}

// setClass adds or removes class, keeping the order of the other classes.
func setClass(n *html.Node, class string, on bool) {
	classes := strings.Fields(attr(n, "class"))
	present := slices.Contains(classes, class)

	switch {
	case on && !present:
		classes = append(classes, class)
	case !on && present:
		classes = slices.DeleteFunc(classes, func(c string) bool { return c == class })
	default:
		return
	}

	setAttr(n, "class", strings.Join(classes, " "))
}
