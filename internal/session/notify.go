package session

// NotificationKind distinguishes success from failure notifications.
type NotificationKind int

// Notification kinds.
const (
	KindSuccess NotificationKind = iota
	KindError
)

// Notification is one user-facing toast.
type Notification struct {
	Title   string
	Message string
	Kind    NotificationKind
}

// NotificationSink collects user-facing notifications and deduplicates
// repeated list-query errors. Emitted notifications queue up until the
// presentation layer drains them.
type NotificationSink struct {
	lastListError string
	queue         []Notification
}

// NewNotificationSink creates an empty sink.
func NewNotificationSink() *NotificationSink {
	return &NotificationSink{}
}

// Success emits a success notification unconditionally.
func (s *NotificationSink) Success(message string) {
	s.queue = append(s.queue, Notification{Kind: KindSuccess, Title: "Success", Message: message})
}

// Failure emits a failure notification unconditionally.
func (s *NotificationSink) Failure(title, message string) {
	s.queue = append(s.queue, Notification{Kind: KindError, Title: title, Message: message})
}

// ListErrorOnce emits a list-query failure only when its normalized message
// differs from the previously recorded one. The recorded message is
// overwritten either way, matching the reference behavior.
func (s *NotificationSink) ListErrorOnce(err error) {
	message := NormalizeError(err)
	if message != s.lastListError {
		s.Failure("Error loading invoices", message)
	}
	s.lastListError = message
}

// ResetListError clears the recorded list-error message so an identical
// failure after an intervening success notifies again.
func (s *NotificationSink) ResetListError() {
	s.lastListError = ""
}

// Drain returns the queued notifications and empties the queue.
func (s *NotificationSink) Drain() []Notification {
	pending := s.queue
	s.queue = nil
	return pending
}
