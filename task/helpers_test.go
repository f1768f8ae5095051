package task

import stderrors "errors"

func errorsAs(err error, target any) bool {
	return stderrors.As(err, target)
}

func errorsIs(err, target error) bool {
	return stderrors.Is(err, target)
}
