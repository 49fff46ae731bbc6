package backlog

import "errors"

// Domain errors for backlog operations.
var (
	// ErrStoryNotFound indicates the story does not exist in the backlog.
	ErrStoryNotFound = errors.New("story not found")

	// ErrSprintNotFound indicates the sprint does not exist.
	ErrSprintNotFound = errors.New("sprint not found")

	// ErrInvalidTransition indicates the requested status transition is not allowed.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// TransitionError provides details about an invalid status transition.
type TransitionError struct {
	StoryID    string
	FromStatus string
	Event      string
}

func (e *TransitionError) Error() string {
	return "cannot transition story " + e.StoryID + " from " + e.FromStatus + " via " + e.Event
}

// Is allows errors.Is to work with TransitionError.
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
