package domain

import "time"

type ResourceState string

const (
	ResourceStateRunning    ResourceState = "running"
	ResourceStateStopped    ResourceState = "stopped"
	ResourceStateTerminated ResourceState = "terminated"
)

// Resource is one compute instance from the inventory snapshot. The engine
// never mutates it; it is re-discovered on every inventory poll.
type Resource struct {
	ID         string
	Type       string
	State      ResourceState
	Region     string
	LaunchTime *time.Time
	Tags       map[string]string
}

// PowerRating is the hardware power envelope for one resource type,
// in watts.
type PowerRating struct {
	AvgWatts float64
	MinWatts float64
	MaxWatts float64
}
