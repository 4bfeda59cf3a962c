package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-intake/pkg/document"
	"github.com/goliatone/go-intake/pkg/record"
)

// YAMLContentType is the media type of record exports.
const YAMLContentType = "application/yaml"

// YAMLRenderer exports the record itself so a summary can be regenerated
// later without re-entering answers.
type YAMLRenderer struct{}

// NewYAMLRenderer constructs the exporter.
func NewYAMLRenderer() *YAMLRenderer {
	return &YAMLRenderer{}
}

func (*YAMLRenderer) Name() string        { return "yaml" }
func (*YAMLRenderer) ContentType() string { return YAMLContentType }

// Render encodes rec. The file name follows the summary naming with a .yaml
// extension.
func (*YAMLRenderer) Render(ctx context.Context, rec record.IntakeRecord) (document.Artifact, error) {
	if ctx == nil {
		return document.Artifact{}, errors.New("render: context is required")
	}
	if err := ctx.Err(); err != nil {
		return document.Artifact{}, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(rec); err != nil {
		return document.Artifact{}, fmt.Errorf("render: encode record: %w", err)
	}
	if err := enc.Close(); err != nil {
		return document.Artifact{}, fmt.Errorf("render: encode record: %w", err)
	}

	name := strings.TrimSuffix(document.Filename(rec.Taxpayer.Name, nil), ".pdf") + ".yaml"
	return document.Artifact{
		Filename:    name,
		ContentType: YAMLContentType,
		Data:        buf.Bytes(),
	}, nil
}

// DecodeRecord reads a record previously written by YAMLRenderer (or by
// hand).
func DecodeRecord(data []byte) (record.IntakeRecord, error) {
	var rec record.IntakeRecord
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rec); err != nil {
		return record.IntakeRecord{}, fmt.Errorf("render: decode record: %w", err)
	}
	return rec, nil
}
