package core

import (
	"fmt"

	"github.com/huangsam/docdiff/schema"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// SegmentsFromDiffs converts an already-computed diff-match-patch diff into segments.
func SegmentsFromDiffs(diffs []diffmatchpatch.Diff) ([]schema.Segment, error) {
	segments := make([]schema.Segment, 0, len(diffs))
	for i, d := range diffs {
		var op schema.OperationKind
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			op = schema.EqualOp
		case diffmatchpatch.DiffDelete:
			op = schema.DeleteOp
		case diffmatchpatch.DiffInsert:
			op = schema.InsertOp
		default:
			return nil, schema.NewContractViolation(fmt.Sprintf("diffs[%d].type", i), int(d.Type), "is not a known operation")
		}
		segments = append(segments, schema.Segment{Operation: op, Text: d.Text})
	}
	return segments, nil
}

// SegmentsFromDelta decodes a diff-match-patch delta against its base text.
func SegmentsFromDelta(base, delta string) ([]schema.Segment, error) {
	dmp := diffmatchpatch.New()
	diffs, err := dmp.DiffFromDelta(base, delta)
	if err != nil {
		return nil, fmt.Errorf("failed to decode delta: %w", err)
	}
	return SegmentsFromDiffs(diffs)
}

// MergeReplacements collapses each delete immediately followed by an insert into
// a single replace segment carrying the inserted text. Other segments pass through.
func MergeReplacements(segments []schema.Segment) []schema.Segment {
	merged := make([]schema.Segment, 0, len(segments))
	for i := 0; i < len(segments); i++ {
		seg := segments[i]
		if seg.Operation == schema.DeleteOp && i+1 < len(segments) && segments[i+1].Operation == schema.InsertOp {
			merged = append(merged, schema.Segment{Operation: schema.ReplaceOp, Text: segments[i+1].Text})
			i++
			continue
		}
		merged = append(merged, seg)
	}
	return merged
}
