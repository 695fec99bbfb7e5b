package app

import (
	"github.com/devicelab-dev/pageobject/pkg/core"
	"github.com/devicelab-dev/pageobject/pkg/driver/mock"
)

// screen is one view controller: a title for the navigation bar and its view.
type screen struct {
	title string
	view  *mock.Node
}

// navigation is a navigation controller: a bar with the title and a back
// button, over a stack of screens of which only the top one is shown.
type navigation struct {
	host    *mock.App
	bar     *mock.Node
	back    *mock.Node
	heading *mock.Node
	content *mock.Node
	stack   []*screen
}

const navigationBarHeight = 44

func newNavigation(host *mock.App, window *mock.Node) *navigation {
	width := window.Bounds.Width
	n := &navigation{host: host}

	n.back = mock.NewNode(core.TypeButton, "BackButton").
		WithBounds(core.Bounds{X: 8, Y: 47, Width: 80, Height: navigationBarHeight})
	n.back.OnTap = func(*mock.Node) { n.pop() }

	n.heading = mock.NewNode(core.TypeOther, "").
		WithBounds(core.Bounds{X: width/2 - 60, Y: 47, Width: 120, Height: navigationBarHeight})

	n.bar = mock.NewNode(core.TypeNavigationBar, "").
		WithBounds(core.Bounds{Y: 47, Width: width, Height: navigationBarHeight}).
		Add(n.back, n.heading)

	n.content = mock.NewNode(core.TypeOther, "").WithBounds(window.Bounds)

	window.Add(n.bar, n.content)
	n.refresh()
	return n
}

// setRoot replaces the stack with s.
func (n *navigation) setRoot(s *screen) {
	for _, old := range n.stack {
		n.content.Remove(old.view)
	}
	n.stack = nil
	n.push(s)
}

func (n *navigation) push(s *screen) {
	n.host.Blur()
	n.stack = append(n.stack, s)
	n.content.Add(s.view)
	n.refresh()
}

func (n *navigation) pop() {
	if len(n.stack) < 2 {
		return
	}
	n.host.Blur()
	top := n.stack[len(n.stack)-1]
	n.stack = n.stack[:len(n.stack)-1]
	n.content.Remove(top.view)
	n.refresh()
}

func (n *navigation) top() *screen {
	if len(n.stack) == 0 {
		return nil
	}
	return n.stack[len(n.stack)-1]
}

// refresh shows the top screen, its title, and the back button when
// there is a screen to go back to.
func (n *navigation) refresh() {
	for i, s := range n.stack {
		s.view.Hidden = i != len(n.stack)-1
	}

	title := ""
	if top := n.top(); top != nil {
		title = top.title
	}
	n.bar.Hidden = title == ""
	n.bar.Identifier = title
	n.heading.Label = title
	n.heading.Identifier = title

	n.back.Hidden = len(n.stack) < 2
	if len(n.stack) >= 2 {
		n.back.Label = n.stack[len(n.stack)-2].title
	}
}
