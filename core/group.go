package core

import (
	"strings"
	"unicode/utf8"

	"github.com/huangsam/docdiff/schema"
)

// GroupSegments merges consecutive segments that share an operation into display groups.
// Concatenating the group texts reproduces the input texts, and no two adjacent
// groups share an operation. Empty input yields an empty, non-nil slice.
func GroupSegments(segments []schema.Segment) []schema.DisplayGroup {
	groups := make([]schema.DisplayGroup, 0, len(segments))
	if len(segments) == 0 {
		return groups
	}

	var sb strings.Builder
	current := schema.DisplayGroup{Operation: segments[0].Operation}
	sb.WriteString(segments[0].Text)
	current.OriginalLength = utf8.RuneCountInString(segments[0].Text)

	for _, seg := range segments[1:] {
		if seg.Operation == current.Operation {
			sb.WriteString(seg.Text)
			current.OriginalLength += utf8.RuneCountInString(seg.Text)
			continue
		}
		current.Text = sb.String()
		groups = append(groups, current)

		sb.Reset()
		sb.WriteString(seg.Text)
		current = schema.DisplayGroup{
			Operation:      seg.Operation,
			OriginalLength: utf8.RuneCountInString(seg.Text),
		}
	}

	current.Text = sb.String()
	return append(groups, current)
}
