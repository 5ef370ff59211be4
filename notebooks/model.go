package notebooks

import (
	"time"

	"submarine-api/pkg/client/model"
)

// Notebook is the server-side record of a notebook server.
type Notebook struct {
	NotebookID  string              `json:"notebookId" yaml:"notebookId"`
	Name        string              `json:"name" yaml:"name"`
	OwnerID     string              `json:"ownerId" yaml:"ownerId"`
	Status      string              `json:"status" yaml:"status"`
	URL         string              `json:"url" yaml:"url"`
	CreatedTime time.Time           `json:"createdTime" yaml:"createdTime"`
	Spec        *model.NotebookSpec `json:"spec" yaml:"spec"`
}
