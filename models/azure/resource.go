package azure

// Resource is the generic shape returned by the resources list endpoint;
// only identity fields are interesting to the walk.
type Resource struct {
	Entity

	Name string `json:"name,omitempty"`

	Type string `json:"type,omitempty"`

	Location string `json:"location,omitempty"`
}
