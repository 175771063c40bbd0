package recommend

import (
	"fmt"

	"github.com/abhisek/paesprep/internal/bloom"
)

// BuildFocusText describes where to focus next. It names both tiers when
// they differ, only the weakest when they are the same, and returns "" when
// either is nil.
func BuildFocusText(weakest, strongest *bloom.Tier) string {
	if weakest == nil || strongest == nil {
		return ""
	}
	if *weakest == *strongest {
		return fmt.Sprintf("Focus on building up your %s skills.", weakest.DisplayName())
	}
	return fmt.Sprintf("Focus on improving your %s skills, and lean on your strength in %s.",
		weakest.DisplayName(), strongest.DisplayName())
}
