package binding

import "errors"

var (
	ErrNotNotifier = errors.New("binding: endpoint does not expose a notifier")
	ErrNilEndpoint = errors.New("binding: endpoint object is nil")
	ErrDetached    = errors.New("binding: detached")
	ErrInvalidMode = errors.New("binding: invalid mode")
)
