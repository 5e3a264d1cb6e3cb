package practicesession

// WarningCode identifies a rejected user action.
type WarningCode string

const (
	WarnEmptySelection   WarningCode = "empty_selection"
	WarnUnknownOption    WarningCode = "unknown_option"
	WarnNotSubmitted     WarningCode = "not_submitted"
	WarnAlreadySubmitted WarningCode = "already_submitted"
	WarnRoundComplete    WarningCode = "round_complete"
	WarnReadOnly         WarningCode = "read_only"
	WarnUnsupported      WarningCode = "unsupported_action"
	WarnDayIncomplete    WarningCode = "day_incomplete"
)

var warningMessages = map[WarningCode]string{
	WarnEmptySelection:   "Please select at least one answer before submitting.",
	WarnUnknownOption:    "The selection contains a letter that is not an option of this question.",
	WarnNotSubmitted:     "Please submit your answer before going to the next question.",
	WarnAlreadySubmitted: "You've already submitted this question. Continue to the next one.",
	WarnRoundComplete:    "This round is complete. Start a new round to continue.",
	WarnReadOnly:         "Review mode is read-only.",
	WarnUnsupported:      "This action is not available in the current mode.",
	WarnDayIncomplete:    "Finish today's questions before moving to the next day.",
}

// Warning is a recoverable, user-visible rejection. It is never persisted.
type Warning struct {
	Code    WarningCode
	Message string
}

// NewWarning builds a warning with its canned message.
func NewWarning(code WarningCode) *Warning {
	return &Warning{Code: code, Message: warningMessages[code]}
}

func (w *Warning) Error() string { return w.Message }
