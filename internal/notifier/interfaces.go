package notifier

// INotifier delivers user-facing notifications (welcome mail and the like).
// Delivery is best-effort: callers log failures and carry on.
type INotifier interface {
	NotifyFromTemplate(to string, subject string, templateName string, data any) error
}
