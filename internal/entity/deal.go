package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Nomes das propriedades de deal no CRM.
const (
	PropDealName     = "dealname"
	PropAmount       = "amount"
	PropCloseDate    = "closedate"
	PropDealStage    = "dealstage"
	PropLastModified = "hs_lastmodifieddate"
	PropCreateDate   = "createdate"
)

// LookupProperties is what a name lookup asks the CRM for.
var LookupProperties = []string{PropDealName, PropAmount, PropLastModified, PropCloseDate, PropDealStage}

// Object is the CRM's raw record: an id plus string-valued properties.
type Object struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
	Archived   bool              `json:"archived"`
}

// Deal é a visão tipada de um deal do CRM.
type Deal struct {
	ID           string     `json:"id"`
	Name         string     `json:"dealname"`
	Amount       *float64   `json:"amount,omitempty"`
	CloseDate    string     `json:"closedate,omitempty"`
	Stage        string     `json:"dealstage,omitempty"`
	LastModified *time.Time `json:"hs_lastmodifieddate,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Archived     bool       `json:"archived"`

	Properties map[string]string `json:"properties"`
}

// DealProperties is the writable subset of a deal. Empty fields are not sent.
type DealProperties struct {
	Name      string
	Amount    *float64
	CloseDate string
	Stage     string
}

// ToProperties serializes the typed fields into the CRM's string map.
func (p DealProperties) ToProperties() map[string]string {
	props := make(map[string]string)
	if p.Name != "" {
		props[PropDealName] = p.Name
	}
	if p.Amount != nil {
		props[PropAmount] = FormatAmount(*p.Amount)
	}
	if p.CloseDate != "" {
		props[PropCloseDate] = p.CloseDate
	}
	if p.Stage != "" {
		props[PropDealStage] = p.Stage
	}
	return props
}

// FormatAmount writes the shortest decimal form: 7777 -> "7777", 3000.5 -> "3000.5".
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// DealFromObject converte o mapa de strings do CRM em um Deal tipado.
// Um amount ou hs_lastmodifieddate malformado é erro.
func DealFromObject(obj *Object) (*Deal, error) {
	if obj == nil {
		return nil, fmt.Errorf("deal object is nil")
	}

	deal := &Deal{
		ID:         obj.ID,
		Name:       obj.Properties[PropDealName],
		CloseDate:  obj.Properties[PropCloseDate],
		Stage:      obj.Properties[PropDealStage],
		CreatedAt:  obj.CreatedAt,
		UpdatedAt:  obj.UpdatedAt,
		Archived:   obj.Archived,
		Properties: obj.Properties,
	}

	if raw := strings.TrimSpace(obj.Properties[PropAmount]); raw != "" {
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q on deal %s: %w", raw, obj.ID, err)
		}
		deal.Amount = &amount
	}

	if raw := obj.Properties[PropLastModified]; raw != "" {
		ts, err := ParseCRMTimestamp(raw)
		if err != nil {
			return nil, err
		}
		deal.LastModified = &ts
	}

	return deal, nil
}
