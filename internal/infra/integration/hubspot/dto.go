package hubspot

import (
	"time"

	"github.com/xavierca1/deal-sync/internal/entity"
)

const (
	OperatorEQ = "EQ"

	SortDescending = "DESCENDING"
	SortAscending  = "ASCENDING"

	// MaxPageSize é o limite de página da API de objetos.
	MaxPageSize = 100
)

type Filter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

type Sort struct {
	PropertyName string `json:"propertyName"`
	Direction    string `json:"direction"`
}

// SearchRequest is a single filter group search.
type SearchRequest struct {
	Filters    []Filter
	Sorts      []Sort
	Properties []string
	Limit      int
}

type filterGroup struct {
	Filters []Filter `json:"filters"`
}

type searchRequest struct {
	FilterGroups []filterGroup `json:"filterGroups"`
	Sorts        []Sort        `json:"sorts,omitempty"`
	Properties   []string      `json:"properties,omitempty"`
	Limit        int           `json:"limit,omitempty"`
}

type objectInput struct {
	Properties map[string]string `json:"properties"`
}

// HubSpot devolve null para propriedades sem valor.
type objectResponse struct {
	ID         string             `json:"id"`
	Properties map[string]*string `json:"properties"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
	Archived   bool               `json:"archived"`
}

type pageResponse struct {
	Total   int              `json:"total"`
	Results []objectResponse `json:"results"`
}

func (o objectResponse) toObject() *entity.Object {
	props := make(map[string]string, len(o.Properties))
	for k, v := range o.Properties {
		if v != nil {
			props[k] = *v
		}
	}
	return &entity.Object{
		ID:         o.ID,
		Properties: props,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
		Archived:   o.Archived,
	}
}

func (p pageResponse) objects() []*entity.Object {
	out := make([]*entity.Object, 0, len(p.Results))
	for _, r := range p.Results {
		out = append(out, r.toObject())
	}
	return out
}
