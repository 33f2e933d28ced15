package models

// GraphElement is one node or edge of a VLAN topology projection, shaped for
// cytoscape-style renderers: nodes first, then edges.
type GraphElement struct {
	Data GraphElementData `json:"data"`
}

// GraphElementData carries the display attributes of a node ("switch-<id>")
// or an edge ("edge-<a>-<b>"). Node-only and edge-only fields are omitted on
// the other kind.
type GraphElementData struct {
	ID        string  `json:"id" example:"switch-1"`
	Label     string  `json:"label,omitempty" example:"core-sw-1"`
	Hostname  string  `json:"hostname,omitempty" example:"core-sw-1"`
	IPAddress string  `json:"ip_address,omitempty" example:"10.0.0.1"`
	Model     string  `json:"model,omitempty" example:"WS-C3850-24T"`
	Port      *string `json:"port,omitempty" example:"Gi0/1"`
	Source    string  `json:"source,omitempty" example:"switch-1"`
	Target    string  `json:"target,omitempty" example:"switch-2"`
}
