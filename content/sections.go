package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SectionsVersion is the only version of the sections body accepted by Parse.
const SectionsVersion int32 = 1

// Sections implements Schema interface and used to parse and normalize simple,
// block/section based document body.
type Sections struct {
	version   int32
	processor Processor
	validate  *validator.Validate
}

// NewSections returns the sections Schema normalizing markdown with processor.
// It is safe for concurrent use.
func NewSections(processor Processor) *Sections {
	validate := validator.New()

	// field names in errors match the json input
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Sections{
		version:   SectionsVersion,
		processor: processor,
		validate:  validate,
	}
}

func (s *Sections) Name() string {
	return "sections"
}

func (s *Sections) Version() int32 {
	return s.version
}

// these unexported DTOs must have exported fields and json name tags
// to ensure encoding/json will parse raw data into these structs
type rawSchema struct {
	Version  int32        `json:"version"`
	Sections []rawSection `json:"sections"`
}

type rawSection struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Kind    Kind      `json:"kind"`
	Content []RawItem `json:"content"`
}

// Section defines a separate block of the content.
type Section struct {
	ID      string        `json:"id"`      // Required. Must be unique across all sections.
	Title   string        `json:"title"`   // Optional. Defines the display name of each section.
	Kind    Kind          `json:"kind"`    // Required. "default" by default.
	Content []ContentItem `json:"content"` // Required. Actual body of the block.
}

// Parse transforms raw json into sections of content items, normalizes the markdown of
// every item and returns the canonical body as json.
func (s *Sections) Parse(body []byte) (*Parsed, error) {
	// 1) parse raw json
	var rawParsed rawSchema
	if err := json.Unmarshal(body, &rawParsed); err != nil {
		return nil, newValidationError("", err)
	}

	if rawParsed.Version != s.version {
		return nil, newValidationError("version", fmt.Errorf("unsupported body version: got %d, want %d", rawParsed.Version, s.version))
	}
	if len(rawParsed.Sections) == 0 {
		return nil, newValidationError("sections", errors.New("must not be empty"))
	}

	// 2) parse and normalize contents and store into []Section
	sections := make([]Section, len(rawParsed.Sections))
	warnings := []FieldWarning{}
	ids := make(map[string]int, len(rawParsed.Sections))

	for i, sec := range rawParsed.Sections {
		path := fmt.Sprintf("sections[%d]", i)

		if sec.ID == "" {
			return nil, newValidationError(path+".id", errors.New("is required"))
		}
		if first, dup := ids[sec.ID]; dup {
			return nil, newValidationError(path+".id", fmt.Errorf("%q is already used by sections[%d]", sec.ID, first))
		}
		ids[sec.ID] = i

		if len(sec.Content) == 0 {
			return nil, newValidationError(path+".content", errors.New("must not be empty"))
		}
		if sec.Kind == "" {
			sec.Kind = KindDefault
		}

		section := Section{
			ID:      sec.ID,
			Title:   sec.Title,
			Kind:    sec.Kind,
			Content: make([]ContentItem, len(sec.Content)),
		}

		for j, rawItem := range sec.Content {
			itemPath := fmt.Sprintf("%s.content[%d]", path, j)

			item, err := newItem(rawItem)
			if err != nil {
				return nil, newValidationError(itemPath, err)
			}

			warnings = append(warnings, s.normalize(itemPath, item)...)

			// validated after the normalization, so markdown without any text is missing
			if err := s.validate.Struct(item); err != nil {
				return nil, newValidationError(itemPath, err)
			}

			section.Content[j] = item
		}

		sections[i] = section
	}

	canonical := struct {
		Version  int32     `json:"version"`
		Sections []Section `json:"sections"`
	}{
		Version:  s.version,
		Sections: sections,
	}

	out, err := json.Marshal(canonical)
	if err != nil {
		return nil, err
	}

	return &Parsed{Body: out, Warnings: warnings}, nil
}

// normalize rewrites the markdown fields of item in their canonical form and returns
// their warnings.
func (s *Sections) normalize(path string, item ContentItem) []FieldWarning {
	var warnings []FieldWarning

	for _, f := range item.markdownFields() {
		res := s.processor.Analyze(*f.value)
		*f.value = strings.TrimSuffix(res.Output, "\n")

		for _, w := range res.Warnings {
			warnings = append(warnings, FieldWarning{Path: path + "." + f.name, Warning: w})
		}
	}

	return warnings
}
