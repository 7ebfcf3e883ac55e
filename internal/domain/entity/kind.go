package entity

import (
	"fmt"
	"strings"
)

// Kind identifies one family of business-area scoped records.
type Kind string

const (
	KindProcess             Kind = "process"
	KindDocument            Kind = "document"
	KindObjective           Kind = "objective"
	KindRisk                Kind = "risk"
	KindNonConformity       Kind = "non_conformity"
	KindRecordKeepingSystem Kind = "record_keeping_system"
	KindImprovement         Kind = "improvement"
	KindEvaluation          Kind = "evaluation"
	KindFeedbackSystem      Kind = "feedback_system"
	KindTrainingSession     Kind = "training_session"
	KindAssessment          Kind = "assessment"
)

// KindInfo describes where a kind lives in the URL space and in the schema.
type KindInfo struct {
	Kind             Kind
	Label            string
	Segment          string
	Table            string
	FileVersionTable string
}

var kindTable = []KindInfo{
	{KindProcess, "Business process", "processes", "business_processes", "business_process_file_versions"},
	{KindDocument, "Business document", "documents", "business_documents", "business_document_file_versions"},
	{KindObjective, "Quality objective", "objectives", "quality_objectives", "quality_objective_file_versions"},
	{KindRisk, "Risk", "risks", "risk_management", "risk_management_file_versions"},
	{KindNonConformity, "Non-conformity", "non-conformities", "non_conformities", "non_conformity_file_versions"},
	{KindRecordKeepingSystem, "Record keeping system", "record-keeping-systems", "record_keeping_systems", "record_keeping_system_file_versions"},
	{KindImprovement, "Business improvement", "improvements", "business_improvements", "business_improvement_file_versions"},
	{KindEvaluation, "Third-party evaluation", "evaluations", "third_party_evaluations", "third_party_evaluation_file_versions"},
	{KindFeedbackSystem, "Customer feedback system", "feedback-systems", "customer_feedback_systems", "customer_feedback_system_file_versions"},
	{KindTrainingSession, "Training session", "training-sessions", "training_sessions", "training_session_file_versions"},
	{KindAssessment, "Performance assessment", "assessments", "performance_assessments", "performance_assessment_file_versions"},
}

var (
	kindsByName    = make(map[Kind]KindInfo, len(kindTable))
	kindsBySegment = make(map[string]Kind, len(kindTable))
)

func init() {
	for _, info := range kindTable {
		kindsByName[info.Kind] = info
		kindsBySegment[info.Segment] = info.Kind
	}
}

// Kinds returns every kind in display order.
func Kinds() []Kind {
	kinds := make([]Kind, len(kindTable))
	for i, info := range kindTable {
		kinds[i] = info.Kind
	}
	return kinds
}

// ParseKind validates an untrusted kind name. Dashes are accepted in place
// of underscores so URL-style names resolve too.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if _, ok := kindsByName[k]; !ok {
		return "", fmt.Errorf("unknown record kind %q", s)
	}
	return k, nil
}

// KindBySegment resolves a URL segment such as "non-conformities".
func KindBySegment(segment string) (Kind, bool) {
	k, ok := kindsBySegment[segment]
	return k, ok
}

func (k Kind) Valid() bool {
	_, ok := kindsByName[k]
	return ok
}

func (k Kind) Info() KindInfo {
	return kindsByName[k]
}

func (k Kind) Label() string {
	return kindsByName[k].Label
}

func (k Kind) Segment() string {
	return kindsByName[k].Segment
}

func (k Kind) Table() string {
	return kindsByName[k].Table
}

func (k Kind) FileVersionTable() string {
	return kindsByName[k].FileVersionTable
}

func (k Kind) String() string {
	return string(k)
}
