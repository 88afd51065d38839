package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// resultOK is the header code of a successful data.go.kr response.
const resultOK = "00"

// apiResponse represents the getRestDeInfo JSON envelope
type apiResponse struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body *struct {
			Items      json.RawMessage `json:"items"`
			NumOfRows  int             `json:"numOfRows"`
			PageNo     int             `json:"pageNo"`
			TotalCount int             `json:"totalCount"`
		} `json:"body"`
	} `json:"response"`
}

// apiItem represents one special day
type apiItem struct {
	DateKind  string      `json:"dateKind"`
	DateName  string      `json:"dateName"`
	IsHoliday string      `json:"isHoliday"` // "Y" or "N"
	Locdate   json.Number `json:"locdate"`   // YYYYMMDD
	Seq       int         `json:"seq"`
}

// parseItems decodes the "items" member. The service sends an empty string
// when there are no items, and a bare object instead of an array when there
// is exactly one.
func parseItems(raw json.RawMessage) ([]apiItem, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, nil
	}

	var wrapper struct {
		Item json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse items: %w", err)
	}

	item := bytes.TrimSpace(wrapper.Item)
	if len(item) == 0 {
		return nil, nil
	}

	switch item[0] {
	case '[':
		var items []apiItem
		if err := json.Unmarshal(item, &items); err != nil {
			return nil, fmt.Errorf("failed to parse item list: %w", err)
		}
		return items, nil
	case '{':
		var single apiItem
		if err := json.Unmarshal(item, &single); err != nil {
			return nil, fmt.Errorf("failed to parse item: %w", err)
		}
		return []apiItem{single}, nil
	default:
		return nil, nil
	}
}
