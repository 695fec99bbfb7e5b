package page_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devicelab-dev/pageobject/pkg/core"
	"github.com/devicelab-dev/pageobject/pkg/driver/mock"
	"github.com/devicelab-dev/pageobject/pkg/page"
)

func scrollFixture() (*mock.App, *mock.Node, core.Element) {
	app := mock.New(mock.Config{})
	scroll := mock.NewNode(core.TypeScrollView, "scroll")
	app.SetRoot(mock.NewNode(core.TypeOther, "").Add(scroll))
	return app, scroll, app.Descendants(core.TypeScrollView).Matching("scroll")
}

func TestFindSwipingIfNeeded_NeverReadySwipesMax(t *testing.T) {
	app, _, target := scrollFixture()
	missing := app.Descendants(core.TypeButton).Matching("nowhere")

	for _, n := range []int{0, 1, 4} {
		app.ResetGestures()
		swipes, err := page.FindSwipingIfNeeded(missing, page.NewSwipeAction(target, core.Up, n))

		require.NoError(t, err)
		assert.Equal(t, n, swipes)
		assert.Equal(t, n, app.Count(mock.GestureSwipe))
	}
}

func TestFindSwipingIfNeeded_ReadyDoesNotSwipe(t *testing.T) {
	app, scroll, target := scrollFixture()
	scroll.Add(mock.NewNode(core.TypeButton, "here"))

	swipes, err := page.FindSwipingIfNeeded(app.Descendants(core.TypeButton).Matching("here"),
		page.NewSwipeAction(target, core.Up, 5))

	require.NoError(t, err)
	assert.Equal(t, 0, swipes)
	assert.Equal(t, 0, app.Count(mock.GestureSwipe))
}

func TestFindSwipingIfNeeded_StopsWhenRevealed(t *testing.T) {
	app, scroll, target := scrollFixture()
	scroll.Add(mock.NewNode(core.TypeButton, "below").OffScreen(core.Up, 3))

	swipes, err := page.FindSwipingIfNeeded(app.Descendants(core.TypeButton).Matching("below"),
		page.NewSwipeAction(target, core.Up, 10))

	require.NoError(t, err)
	assert.Equal(t, 3, swipes)
}

func TestFindSwipingIfNeeded_ChecksAllConditions(t *testing.T) {
	app, scroll, target := scrollFixture()
	noFrame := mock.NewNode(core.TypeButton, "noFrame").WithBounds(core.Bounds{})
	notHittable := mock.NewNode(core.TypeButton, "notHittable")
	notHittable.Hittable = false
	scroll.Add(noFrame, notHittable)

	for _, name := range []string{"noFrame", "notHittable"} {
		app.ResetGestures()
		swipes, err := page.FindSwipingIfNeeded(app.Descendants(core.TypeButton).Matching(name),
			page.NewSwipeAction(target, core.Down, 2))

		require.NoError(t, err)
		assert.Equal(t, 2, swipes, name)
	}
}

func TestFindSwipingIfNeeded_NilAction(t *testing.T) {
	app, _, _ := scrollFixture()

	swipes, err := page.FindSwipingIfNeeded(app.Descendants(core.TypeButton).Matching("nowhere"), nil)

	require.NoError(t, err)
	assert.Equal(t, 0, swipes)
	assert.Empty(t, app.Gestures())
}

func TestFindSwipingIfNeeded_SwipeErrorPropagates(t *testing.T) {
	app, _, target := scrollFixture()
	lost := errors.New("lost")
	app.FailNext(mock.GestureSwipe, lost)

	swipes, err := page.FindSwipingIfNeeded(app.Descendants(core.TypeButton).Matching("nowhere"),
		page.NewSwipeAction(target, core.Up, 3))

	assert.ErrorIs(t, err, lost)
	assert.Equal(t, 0, swipes)
}

func TestSwipeAction_Perform(t *testing.T) {
	app, scroll, target := scrollFixture()
	scroll.Add(mock.NewNode(core.TypeButton, "here"))

	require.NoError(t, page.NewSwipeAction(target, core.Left, 4).Perform())

	gestures := app.Gestures()
	require.Len(t, gestures, 4)
	for _, g := range gestures {
		assert.Equal(t, core.Left, g.Direction)
	}
}
