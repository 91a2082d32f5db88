package schema

// Display labels for segment operations.
const (
	EqualLabel   = "Common"
	DeleteLabel  = "Removed"
	InsertLabel  = "Added"
	ReplaceLabel = "Changed"
)

// NoDifferencesLabel is shown when a result carries no segments.
const NoDifferencesLabel = "No differences found"

// OperationLabel returns the display label for an operation.
func OperationLabel(op OperationKind) string {
	switch op {
	case EqualOp:
		return EqualLabel
	case DeleteOp:
		return DeleteLabel
	case InsertOp:
		return InsertLabel
	case ReplaceOp:
		return ReplaceLabel
	default:
		return string(op)
	}
}

// TierLabel returns the display label for a similarity tier.
func TierLabel(t Tier) string {
	switch t {
	case ExcellentTier:
		return "Excellent"
	case GoodTier:
		return "Good"
	case FairTier:
		return "Fair"
	default:
		return "Poor"
	}
}

// TierHexColor returns the badge color for a similarity tier.
func TierHexColor(t Tier) string {
	switch t {
	case ExcellentTier:
		return "#10b981"
	case GoodTier:
		return "#f59e0b"
	case FairTier:
		return "#f87171"
	default:
		return "#dc2626"
	}
}

// BarHexColor returns the bar color for a bar level.
func BarHexColor(l BarLevel) string {
	switch l {
	case HighBar:
		return "#10b981"
	case MediumBar:
		return "#f59e0b"
	default:
		return "#ef4444"
	}
}
