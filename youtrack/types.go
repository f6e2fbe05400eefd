package youtrack

// Issue is a YouTrack issue. Only the fields requested by the client's
// fields selectors are populated; everything else stays at its zero value.
type Issue struct {
	ID           string        `json:"id"`
	Summary      string        `json:"summary"`
	Description  string        `json:"description,omitempty"`
	Project      *Project      `json:"project,omitempty"`
	CustomFields []CustomField `json:"customFields,omitempty"`
}

// Project is a YouTrack project.
type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName,omitempty"`
}

// CustomField is a project-specific issue field. Value is left loosely
// typed: YouTrack custom field values are polymorphic (enum bundles, users,
// periods, plain numbers).
type CustomField struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Value any    `json:"value,omitempty"`
}

// Comment is an issue comment.
type Comment struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Author *User  `json:"author,omitempty"`
}

// User is a YouTrack user account.
type User struct {
	ID    string `json:"id"`
	Login string `json:"login,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Duration is a time-tracking duration value.
type Duration struct {
	Minutes      int    `json:"minutes"`
	Presentation string `json:"presentation,omitempty"`
}

// WorkItem is a logged unit of time spent on an issue.
type WorkItem struct {
	ID          string        `json:"id"`
	Date        int64         `json:"date,omitempty"`
	Duration    Duration      `json:"duration"`
	Author      *User         `json:"author,omitempty"`
	Description string        `json:"description,omitempty"`
	Type        *WorkItemType `json:"type,omitempty"`
}

// WorkItemType is an allowed work item kind (Development, Testing, ...).
type WorkItemType struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	LocalizedName string `json:"localizedName,omitempty"`
}

// IssueWorkItems pairs an issue with its logged work items, as returned by
// the per-project work item listing.
type IssueWorkItems struct {
	ID        string     `json:"id"`
	Summary   string     `json:"summary"`
	WorkItems []WorkItem `json:"workItems"`
}

// Board is an agile board.
type Board struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Projects []Project `json:"projects,omitempty"`
}

// Sprint is a sprint on an agile board.
type Sprint struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Start      int64  `json:"start,omitempty"`
	Finish     int64  `json:"finish,omitempty"`
	IsArchived bool   `json:"isArchived,omitempty"`
}

// Activity is a single entry in an issue's change history.
type Activity struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Author    *User  `json:"author,omitempty"`
	Added     any    `json:"added,omitempty"`
	Removed   any    `json:"removed,omitempty"`
}

// Attachment is a file attached to an issue.
type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LinkType describes a kind of relation between issues (Relates,
// Duplicates, Subtask, ...).
type LinkType struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Directed bool   `json:"directed"`
}

// IssueLink is a set of issues related to one issue through a link type in
// one direction.
type IssueLink struct {
	ID        string    `json:"id"`
	Direction string    `json:"direction"`
	LinkType  *LinkType `json:"linkType,omitempty"`
	Issues    []Issue   `json:"issues,omitempty"`
}

// Workflow is a server-side workflow script.
type Workflow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProjectCustomField is a custom field attached to a project, including its
// value type.
type ProjectCustomField struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	FieldType *FieldType `json:"fieldType,omitempty"`
}

// FieldType describes the value type of a custom field.
type FieldType struct {
	ID        string `json:"id"`
	ValueType string `json:"valueType,omitempty"`
}

// Calendar is a deadline (holiday) calendar.
type Calendar struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Holidays any    `json:"holidays,omitempty"`
}
