package middleware

import "github.com/aretw0/storypath/pkg/ports"

// Middleware allows wrapping a ReportStore to add behavior.
type Middleware func(ports.ReportStore) ports.ReportStore
