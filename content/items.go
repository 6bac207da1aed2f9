package content

import (
	"encoding/json"
	"fmt"
)

type ContentItem interface {
	ContentType() Type

	// markdownFields returns the fields holding markdown, which are normalized in place.
	markdownFields() []markdownField
}

type markdownField struct {
	name  string
	value *string
}

type Typed struct {
	Type Type `json:"type" validate:"required"`
}

func (t Typed) ContentType() Type { return t.Type }

type Paragraph struct {
	Typed
	Markdown string `json:"markdown" validate:"required"` // Inline rich text, e.g. ==highlighted== *emphasis*
}

func (p *Paragraph) markdownFields() []markdownField {
	return []markdownField{{"markdown", &p.Markdown}}
}

type Image struct {
	Typed
	URL     string `json:"url" validate:"required,url"` // URL to the image.
	Alt     string `json:"alt"`                         // Optional. Alternative image caption, provided for accessibility.
	Caption string `json:"caption"`                     // Optional. Image caption markdown.
}

func (i *Image) markdownFields() []markdownField {
	return []markdownField{{"caption", &i.Caption}}
}

type List struct {
	Typed
	Style string   `json:"style" validate:"required,oneof=bullet numbered"`
	Items []string `json:"items" validate:"required,min=1,dive,required"` // Each element is markdown.
}

func (l *List) markdownFields() []markdownField {
	fields := make([]markdownField, len(l.Items))
	for i := range l.Items {
		fields[i] = markdownField{fmt.Sprintf("items[%d]", i), &l.Items[i]}
	}
	return fields
}

type Code struct {
	Typed
	Language string `json:"language"`                // Optional. Can be "go", "js", "sql", etc.
	Code     string `json:"code" validate:"required"` // Kept verbatim.
}

func (c *Code) markdownFields() []markdownField { return nil }

type Quote struct {
	Typed
	Markdown string `json:"markdown" validate:"required"` // Quote's body.
	Author   string `json:"author"`                       // Optional.
}

func (q *Quote) markdownFields() []markdownField {
	return []markdownField{{"markdown", &q.Markdown}}
}

// Content divider.
type Divider struct {
	Typed
}

func (d *Divider) markdownFields() []markdownField { return nil }

// RawItem defines not-fully parsed json content item to be later parsed as ContentItem based on the Type field.
type RawItem struct {
	Type Type            `json:"type"`
	Raw  json.RawMessage // the whole JSON object for this item
}

// UnmarshalJSON helps saving all the data in the Raw field
// and still be able to access the content type via Type field
func (ri *RawItem) UnmarshalJSON(data []byte) error {
	// 1) first copy all the data into the Raw field
	ri.Raw = make(json.RawMessage, len(data))
	copy(ri.Raw, data)

	// 2) extract only type and save it in the Type field
	var aux struct {
		Type Type `json:"type"`
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	ri.Type = aux.Type
	return nil
}

// newItem decodes raw into the ContentItem of its type.
func newItem(raw RawItem) (ContentItem, error) {
	var item ContentItem

	switch raw.Type {
	case TypeParagraph:
		item = &Paragraph{}
	case TypeImage:
		item = &Image{}
	case TypeList:
		item = &List{}
	case TypeCode:
		item = &Code{}
	case TypeQuote:
		item = &Quote{}
	case TypeDivider:
		item = &Divider{}
	default:
		return nil, fmt.Errorf("unknown type %q", raw.Type)
	}

	if err := json.Unmarshal(raw.Raw, item); err != nil {
		return nil, err
	}

	return item, nil
}
