package page

import (
	"github.com/devicelab-dev/pageobject/pkg/core"
	"github.com/devicelab-dev/pageobject/pkg/logger"
)

// SwipeAction describes how to scroll a hidden element into view:
// which element to swipe, in which direction, and at most how many times.
type SwipeAction struct {
	Target    core.Element
	Direction core.Direction
	MaxSwipes int
}

// NewSwipeAction returns a swipe action on target.
func NewSwipeAction(target core.Element, d core.Direction, maxSwipes int) *SwipeAction {
	return &SwipeAction{Target: target, Direction: d, MaxSwipes: maxSwipes}
}

// Perform swipes the target MaxSwipes times, regardless of what comes into view.
func (a *SwipeAction) Perform() error {
	for i := 0; i < a.MaxSwipes; i++ {
		if err := a.Target.Swipe(a.Direction); err != nil {
			return err
		}
	}
	return nil
}

// Ready reports whether el exists, has a non-empty frame and can receive taps.
func Ready(el core.Element) bool {
	return el.Exists() && !el.Frame().Empty() && el.IsHittable()
}

// FindSwipingIfNeeded swipes action's target until el is ready or MaxSwipes
// swipes were issued, and returns the number of swipes.
// A nil action does nothing. Running out of swipes is not an error;
// the caller's own existence check reports it.
func FindSwipingIfNeeded(el core.Element, action *SwipeAction) (int, error) {
	if action == nil {
		return 0, nil
	}

	swipes := 0
	for !Ready(el) && swipes < action.MaxSwipes {
		if err := action.Target.Swipe(action.Direction); err != nil {
			return swipes, err
		}
		swipes++
		logger.Debug("finder: swipe %s %d/%d on %s looking for %s",
			action.Direction, swipes, action.MaxSwipes, action.Target.Describe(), el.Describe())
	}
	return swipes, nil
}
