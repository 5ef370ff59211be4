package model

// ServeSpec requests a serving endpoint for a registered model version.
// URL is filled in by the server once the endpoint exists.
type ServeSpec struct {
	ModelName    string `json:"modelName,omitempty" yaml:"modelName,omitempty"`
	ModelVersion int32  `json:"modelVersion,omitempty" yaml:"modelVersion,omitempty"`
	ModelType    string `json:"modelType,omitempty" yaml:"modelType,omitempty"`
	URL          string `json:"url,omitempty" yaml:"url,omitempty"`
}
