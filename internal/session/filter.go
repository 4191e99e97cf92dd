// Package session implements the invoice review session: the state machine
// that reconciles schema metadata, picklist metadata, and the invoice list
// query with the user's selection and submit actions, and deduplicates the
// error notifications those flows produce.
package session

// AllStatuses is the filter sentinel standing in for "no status filter".
const AllStatuses = "__ALL__"

// TranslateStatusFilter maps the UI filter value to the query parameter the
// backend expects: nil for the sentinel, the value itself otherwise.
func TranslateStatusFilter(value string) *string {
	if value == AllStatuses {
		return nil
	}
	return &value
}
