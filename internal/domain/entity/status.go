package entity

import "slices"

// Progress values shared by every kind except documents.
const (
	ProgressNotStarted = "Not Started"
	ProgressInProgress = "In Progress"
	ProgressCompleted  = "Completed"
	ProgressOnHold     = "On Hold"
)

// Document lifecycle values.
const (
	DocStatusDraft       = "Draft"
	DocStatusUnderReview = "Under Review"
	DocStatusApproved    = "Approved"
	DocStatusObsolete    = "Obsolete"
)

var (
	progressValues  = []string{ProgressNotStarted, ProgressInProgress, ProgressCompleted, ProgressOnHold}
	docStatusValues = []string{DocStatusDraft, DocStatusUnderReview, DocStatusApproved, DocStatusObsolete}
)

func ValidProgress(s string) bool {
	return slices.Contains(progressValues, s)
}

func ValidDocStatus(s string) bool {
	return slices.Contains(docStatusValues, s)
}

// ProgressValues lists the progress values in workflow order.
func ProgressValues() []string {
	return slices.Clone(progressValues)
}

// DocStatusValues lists the document statuses in workflow order.
func DocStatusValues() []string {
	return slices.Clone(docStatusValues)
}
