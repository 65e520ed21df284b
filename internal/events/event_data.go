package events

// EventData is implemented by every typed event payload
type EventData interface {
	// EventType returns the event type this data is associated with
	EventType() EventType
}

// StateChangedData describes one applied store dispatch
type StateChangedData struct {
	Seq    uint64 `json:"seq"`
	Slice  string `json:"slice"`
	Action string `json:"action"`
}

// EventType returns the event type for StateChangedData
func (d *StateChangedData) EventType() EventType {
	return StateChanged
}

// CuesReloadedData is emitted after a fresh cue load
type CuesReloadedData struct {
	Count int `json:"count"`
}

// EventType returns the event type for CuesReloadedData
func (d *CuesReloadedData) EventType() EventType {
	return CuesReloaded
}

// SnapshotArchivedData is emitted after the state was uploaded to object storage
type SnapshotArchivedData struct {
	Key   string `json:"key"`
	Bytes int    `json:"bytes"`
	Seq   uint64 `json:"seq"`
}

// EventType returns the event type for SnapshotArchivedData
func (d *SnapshotArchivedData) EventType() EventType {
	return SnapshotArchived
}

// JobStatusData reports the outcome of a scheduled job
type JobStatusData struct {
	Job      string  `json:"job"`
	Status   string  `json:"status"` // "completed" or "failed"
	Error    string  `json:"error,omitempty"`
	Duration float64 `json:"duration"`
}

// EventType returns the event type for JobStatusData
func (d *JobStatusData) EventType() EventType {
	if d.Status == "failed" {
		return JobFailed
	}
	return JobCompleted
}

// ErrorEventData contains data for ErrorOccurred events
type ErrorEventData struct {
	Error   string                 `json:"error"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// EventType returns the event type for ErrorEventData
func (d *ErrorEventData) EventType() EventType {
	return ErrorOccurred
}
