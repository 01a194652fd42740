package entity

import "time"

type Status string

const (
	StatusRequested  Status = "requested"
	StatusProcessing Status = "processing"
	StatusDone       Status = "done"
	StatusError      Status = "error"
)

// SeparationJob tracks one separation request from submission to
// stems landing in cloud storage.
type SeparationJob struct {
	ID     string `dynamo:"id,hash" json:"id"`
	Status Status `dynamo:"status" json:"status"`

	SourceURL string  `dynamo:"source_url" json:"source_url"`
	Mode      string  `dynamo:"mode" json:"mode"`
	Quality   string  `dynamo:"quality" json:"quality"`
	Strength  float64 `dynamo:"strength" json:"strength"`

	VocalsURL        string `dynamo:"vocals_url,omitempty" json:"vocals_url,omitempty"`
	AccompanimentURL string `dynamo:"accompaniment_url,omitempty" json:"accompaniment_url,omitempty"`

	// Progress is a coarse percentage for polling clients.
	Progress int `dynamo:"progress" json:"progress"`

	ErrorMessage string `dynamo:"error_message,omitempty" json:"error_message,omitempty"`

	CreatedAt time.Time `dynamo:"created_at" json:"created_at"`
	UpdatedAt time.Time `dynamo:"updated_at" json:"updated_at"`
}

func (j SeparationJob) IsFinished() bool {
	return j.Status == StatusDone || j.Status == StatusError
}
