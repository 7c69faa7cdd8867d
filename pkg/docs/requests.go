package docs

import (
	"fmt"

	"github.com/nareshroyalc/Docify/pkg/worklog"
)

// Request is one entry of a batchUpdate payload. Exactly one member is set.
type Request struct {
	InsertText      *InsertTextRequest      `json:"insertText,omitempty"`
	UpdateTextStyle *UpdateTextStyleRequest `json:"updateTextStyle,omitempty"`
}

// InsertTextRequest inserts text at a location.
type InsertTextRequest struct {
	Location Location `json:"location"`
	Text     string   `json:"text"`
}

// UpdateTextStyleRequest applies a text style over a range.
type UpdateTextStyleRequest struct {
	Range     Range     `json:"range"`
	TextStyle TextStyle `json:"textStyle"`
	Fields    string    `json:"fields"`
}

// Location is an absolute document index.
type Location struct {
	Index int `json:"index"`
}

// Range is a half-open [StartIndex, EndIndex) document range.
type Range struct {
	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`
}

// TextStyle carries the styling fields this system sets.
type TextStyle struct {
	Bold     bool      `json:"bold"`
	FontSize Dimension `json:"fontSize"`
}

// Dimension is a magnitude with a unit, always points here.
type Dimension struct {
	Magnitude float64 `json:"magnitude"`
	Unit      string  `json:"unit"`
}

// BatchRequests converts an assembled operation list into Docs API requests,
// preserving order.
func BatchRequests(ops []worklog.Operation) ([]Request, error) {
	requests := make([]Request, 0, len(ops))
	for _, op := range ops {
		switch v := op.(type) {
		case worklog.InsertText:
			requests = append(requests, Request{
				InsertText: &InsertTextRequest{
					Location: Location{Index: v.At},
					Text:     v.Text,
				},
			})
		case worklog.SetStyle:
			requests = append(requests, Request{
				UpdateTextStyle: &UpdateTextStyleRequest{
					Range: Range{StartIndex: v.Start, EndIndex: v.End},
					TextStyle: TextStyle{
						Bold:     v.Bold,
						FontSize: Dimension{Magnitude: v.FontSizePT, Unit: "PT"},
					},
					Fields: "bold,fontSize",
				},
			})
		default:
			return nil, fmt.Errorf("unsupported operation type %T", op)
		}
	}
	return requests, nil
}

// DocURL returns the browser URL of a document.
func DocURL(docID string) string {
	return "https://docs.google.com/document/d/" + docID + "/edit"
}
