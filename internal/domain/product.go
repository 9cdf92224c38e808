package domain

// ProductDetails is the structured description the provider returns for an
// uploaded product photo. All seven fields are required in the response
// schema; users may edit them afterwards, so they stay plain free text.
type ProductDetails struct {
	Specifications     string `json:"specifications"`
	UsageInstructions  string `json:"usageInstructions"`
	Compatibility      string `json:"compatibility"`
	MaintenanceTips    string `json:"maintenanceTips"`
	PerformanceMetrics string `json:"performanceMetrics"`
	Warranty           string `json:"warranty"`
	Status             string `json:"status"`
}
