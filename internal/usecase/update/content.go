package update

import (
	"fmt"
	"log/slog"

	"weekly-aws-mcp/internal/observability/metrics"
)

// Content is the body payload of a feed entry. A nil Content means absent;
// otherwise it is one of TextContent, ValueListContent or OpaqueContent.
type Content interface {
	isContent()
}

// TextContent is a plain text body.
type TextContent string

// ContentValue is one content variant as published by the feed (for example
// the text/html rendering of content:encoded). Value is loosely typed because
// it comes straight from the parsed document.
type ContentValue struct {
	Type  string
	Value any
}

// ValueListContent is an ordered list of content variants.
type ValueListContent []ContentValue

// OpaqueContent carries a payload of any shape the pipeline does not understand.
type OpaqueContent struct {
	Raw any
}

func (TextContent) isContent()      {}
func (ValueListContent) isContent() {}
func (OpaqueContent) isContent()    {}

// ClassifyContent converts a loosely typed payload into a Content.
// It is applied once where entries enter the pipeline.
func ClassifyContent(raw any) Content {
	switch v := raw.(type) {
	case nil:
		return nil
	case Content:
		return v
	case string:
		return TextContent(v)
	case []ContentValue:
		return ValueListContent(v)
	case []map[string]any:
		values := make(ValueListContent, 0, len(v))
		for _, m := range v {
			values = append(values, contentValueFromMap(m))
		}
		return values
	case []any:
		values := make(ValueListContent, 0, len(v))
		for _, item := range v {
			switch it := item.(type) {
			case ContentValue:
				values = append(values, it)
			case map[string]any:
				values = append(values, contentValueFromMap(it))
			default:
				// an element with no value attribute
				values = append(values, ContentValue{})
			}
		}
		return values
	default:
		return OpaqueContent{Raw: v}
	}
}

func contentValueFromMap(m map[string]any) ContentValue {
	cv := ContentValue{Value: m["value"]}
	if t, ok := m["type"].(string); ok {
		cv.Type = t
	}
	return cv
}

// NormalizeContent reduces c to a single string.
//
// Only the first element of a ValueListContent is consulted. Shapes that cannot
// yield text are reported at WARN with their observed type and normalise to
// absence; the function never fails.
func NormalizeContent(logger *slog.Logger, c Content) (string, bool) {
	if logger == nil {
		logger = slog.Default()
	}

	switch v := c.(type) {
	case nil:
		return "", false
	case TextContent:
		if v == "" {
			return "", false
		}
		return string(v), true
	case ValueListContent:
		if len(v) == 0 {
			return "", false
		}
		if s, ok := v[0].Value.(string); ok {
			return s, true
		}
		observed := fmt.Sprintf("%T", v[0].Value)
		logger.Warn("content[0].value is not a string",
			slog.String("observed_type", observed))
		metrics.RecordContentRejected(observed)
		return "", false
	case OpaqueContent:
		observed := fmt.Sprintf("%T", v.Raw)
		logger.Warn("unexpected content type",
			slog.String("observed_type", observed))
		metrics.RecordContentRejected(observed)
		return "", false
	default:
		observed := fmt.Sprintf("%T", v)
		logger.Warn("unexpected content type",
			slog.String("observed_type", observed))
		metrics.RecordContentRejected(observed)
		return "", false
	}
}
