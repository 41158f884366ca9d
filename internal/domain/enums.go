package domain

type ItemKind string

const (
	KindTask      ItemKind = "task"
	KindBug       ItemKind = "bug"
	KindFeature   ItemKind = "feature"
	KindMilestone ItemKind = "milestone"
)

// ValidItemKinds is the canonical set of accepted item kind strings.
var ValidItemKinds = map[string]bool{
	"task": true, "bug": true, "feature": true, "milestone": true,
}

type GroupMode string

const (
	GroupNone     GroupMode = "none"
	GroupAssignee GroupMode = "assignee"
	GroupLabel    GroupMode = "label"
)
