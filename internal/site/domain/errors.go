package domain

import (
	"fmt"

	"github.com/cristianortiz/proxyBidding/internal/shared/errs"
)

var (
	ErrSiteNotFound = fmt.Errorf("site not found: %w", errs.ErrNotFound)
)
